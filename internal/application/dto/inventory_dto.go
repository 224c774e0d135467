package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// ProcessResultResponse respuesta de POST /api/documents/:id/complete.
type ProcessResultResponse struct {
	Success      bool     `json:"success"`
	TaskID       string   `json:"task_id,omitempty"`
	LotsCreated  int      `json:"lots_created"`
	LotsDeducted int      `json:"lots_deducted"`
	StockUpdated int      `json:"stock_updated"`
	Warnings     []string `json:"warnings,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

// TaskResponse representa una tarea de inventario en los listados del dashboard.
type TaskResponse struct {
	ID             string     `json:"id"`
	DocumentID     string     `json:"document_id"`
	DocumentNumber string     `json:"document_number"`
	DocumentType   string     `json:"document_type"`
	TaskType       string     `json:"task_type"`
	CounterpartyID string     `json:"counterparty_id"`
	ExpectedDate   *time.Time `json:"expected_date,omitempty"`
	Status         string     `json:"status"`
	CompletedBy    string     `json:"completed_by,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TaskFromEntity mapea la entidad a su representación HTTP.
func TaskFromEntity(t *entity.InventoryTask) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		DocumentID:     t.DocumentID,
		DocumentNumber: t.DocumentNumber,
		DocumentType:   t.DocumentType,
		TaskType:       t.TaskType,
		CounterpartyID: t.CounterpartyID,
		ExpectedDate:   t.ExpectedDate,
		Status:         t.Status,
		CompletedBy:    t.CompletedBy,
		CompletedAt:    t.CompletedAt,
		CreatedAt:      t.CreatedAt,
	}
}

// LotResponse representa un lote en los listados por producto.
type LotResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	LotNumber        string          `json:"lot_number"`
	InitialQuantity  decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
	Unit             string          `json:"unit"`
	Status           string          `json:"status"`
	SourceDocumentID string          `json:"source_document_id"`
	SupplierID       string          `json:"supplier_id"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	ReceivedAt       time.Time       `json:"received_at"`
}

// LotFromEntity mapea la entidad a su representación HTTP.
func LotFromEntity(l *entity.InventoryLot) LotResponse {
	return LotResponse{
		ID:               l.ID,
		ProductID:        l.ProductID,
		LotNumber:        l.LotNumber,
		InitialQuantity:  l.InitialQuantity,
		CurrentQuantity:  l.CurrentQuantity,
		Unit:             l.Unit,
		Status:           l.Status,
		SourceDocumentID: l.SourceDocumentID,
		SupplierID:       l.SupplierID,
		UnitCost:         l.UnitCost,
		TotalCost:        l.TotalCost,
		ReceivedAt:       l.ReceivedAt,
	}
}

// LotTransactionResponse asiento del ledger a granularidad lote.
type LotTransactionResponse struct {
	ID             string          `json:"id"`
	LotID          string          `json:"lot_id"`
	DocumentID     string          `json:"document_id"`
	ItemID         string          `json:"item_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ProductTransactionResponse asiento del ledger a granularidad producto.
type ProductTransactionResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	DocumentID  string          `json:"document_id"`
	ItemID      string          `json:"item_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	CreatedAt   time.Time       `json:"created_at"`
}
