package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// processInboundItem convierte una línea de compra completada en un lote nuevo:
// crea el InventoryLot con initial = current = q, asienta el LotTransaction de
// entrada (antes 0, después q) y suma q al saldo del producto con su
// ProductTransaction. Corre dentro de la transacción por línea; la fila del
// producto queda bloqueada (FOR UPDATE) durante todo el read-modify-write.
func (uc *CompletionProcessor) processInboundItem(
	lotRepo repository.LotRepository,
	lotTxRepo repository.LotTransactionRepository,
	productRepo repository.ProductRepository,
	productTxRepo repository.ProductTransactionRepository,
	doc *entity.Document,
	item *entity.DocumentItem,
	quantity decimal.Decimal,
	result *ProcessResult,
) error {
	// Idempotencia a nivel línea: si ya hay asiento para (documento, línea), el
	// reintento no debe duplicar lotes ni asientos.
	posted, err := productTxRepo.ExistsForItem(doc.ID, item.ID)
	if err != nil {
		return fmt.Errorf("verificar asiento previo: %w", err)
	}
	if posted {
		result.warnf("línea %q ya asentada para el documento %s, se omite", item.Name, doc.Number)
		return nil
	}

	product, err := productRepo.GetForUpdate(item.ProductID)
	if err != nil {
		return fmt.Errorf("bloquear producto %s: %w", item.ProductID, err)
	}
	if product == nil {
		return domain.ErrNotFound
	}

	lotNumber, err := uc.lotNumberRepo.Next()
	if err != nil {
		return fmt.Errorf("emitir número de lote: %w", err)
	}

	now := time.Now()
	lot := &entity.InventoryLot{
		ID:               uuid.New().String(),
		ProductID:        product.ID,
		LotNumber:        lotNumber,
		InitialQuantity:  quantity,
		CurrentQuantity:  quantity,
		Unit:             item.Unit,
		Status:           entity.LotStatusAvailable,
		SourceType:       entity.LotSourcePurchase,
		SourceDocumentID: doc.ID,
		SupplierID:       doc.CounterpartyID,
		UnitCost:         item.UnitPrice,
		TotalCost:        quantity.Mul(item.UnitPrice),
		ReceivedAt:       now,
		CreatedAt:        now,
	}
	if err := lotRepo.Create(lot); err != nil {
		return fmt.Errorf("crear lote %s: %w", lotNumber, err)
	}

	if err := lotTxRepo.Create(&entity.LotTransaction{
		ID:             uuid.New().String(),
		LotID:          lot.ID,
		DocumentID:     doc.ID,
		ItemID:         item.ID,
		Type:           entity.TransactionTypeInbound,
		Quantity:       quantity,
		QuantityBefore: decimal.Zero,
		QuantityAfter:  quantity,
		CreatedAt:      now,
	}); err != nil {
		return fmt.Errorf("asentar transacción del lote %s: %w", lotNumber, err)
	}

	stockBefore := product.CurrentStock
	stockAfter := stockBefore.Add(quantity)
	if err := productRepo.UpdateStock(product.ID, stockAfter); err != nil {
		return fmt.Errorf("actualizar saldo del producto %s: %w", product.Code, err)
	}

	if err := productTxRepo.Create(&entity.ProductTransaction{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		DocumentID:  doc.ID,
		ItemID:      item.ID,
		Type:        entity.TransactionTypeInbound,
		Quantity:    quantity,
		StockBefore: stockBefore,
		StockAfter:  stockAfter,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("asentar transacción del producto %s: %w", product.Code, err)
	}

	result.LotsCreated++
	result.StockUpdated++
	return nil
}
