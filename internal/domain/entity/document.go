package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento que disparan efectos de inventario.
const (
	DocumentTypeOrder    = "order"    // compra -> entrada de lotes
	DocumentTypeEstimate = "estimate" // venta -> salida FIFO
)

// Estados del ciclo de vida del documento (propiedad del workflow externo).
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusPending   = "pending"
	DocumentStatusCompleted = "completed"
	DocumentStatusWithdrawn = "withdrawn"
)

// Document representa un documento de compra (order) o venta (estimate).
// Es de solo lectura para el motor de inventario: el workflow de aprobación externo
// es el dueño del ciclo de vida; este core solo reacciona a status == completed.
type Document struct {
	ID             string
	Number         string // número visible del documento (ej. ORD-2026-0001)
	Type           string // order | estimate
	CounterpartyID string // proveedor (order) o cliente (estimate)
	ExpectedDate   *time.Time
	Status         string
	CreatedAt      time.Time
}

// IsCompleted indica si el documento está en estado final y puede procesarse.
func (d *Document) IsCompleted() bool {
	return d.Status == DocumentStatusCompleted
}

// DocumentItem es una línea del documento. Solo lectura para este core.
// QuantityText llega como texto libre y debe parsearse (ver inventory.ParseQuantity).
// Un item sin ProductID está explícitamente desvinculado del catálogo y se excluye
// de los efectos de inventario; es intencional, no un error.
type DocumentItem struct {
	ID           string
	DocumentID   string
	ProductID    string // vacío = item desvinculado
	Name         string
	Spec         string
	QuantityText string // cantidad en texto libre, puede traer caracteres no numéricos
	Unit         string
	UnitPrice    decimal.Decimal
	Amount       decimal.Decimal
	Position     int // orden de la línea dentro del documento
}

// IsLinked indica si la línea referencia un producto del catálogo.
func (i *DocumentItem) IsLinked() bool {
	return i.ProductID != ""
}
