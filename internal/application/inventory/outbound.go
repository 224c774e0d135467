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

// processOutboundItem consume stock para una línea de venta completada con FIFO
// estricto: recorre los lotes disponibles del producto en orden received_at,
// created_at y descuenta de cada uno min(restante, lote.CurrentQuantity) hasta
// cubrir la cantidad pedida o agotar los lotes. El stock insuficiente no es fatal:
// se descuenta lo disponible (cumplimiento parcial) y se advierte el faltante.
// Corre dentro de la transacción por línea; producto y lotes quedan bloqueados
// (FOR UPDATE) durante el recorrido.
func (uc *CompletionProcessor) processOutboundItem(
	lotRepo repository.LotRepository,
	lotTxRepo repository.LotTransactionRepository,
	productRepo repository.ProductRepository,
	productTxRepo repository.ProductTransactionRepository,
	doc *entity.Document,
	item *entity.DocumentItem,
	quantity decimal.Decimal,
	result *ProcessResult,
) error {
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

	stockBefore := product.CurrentStock
	if stockBefore.LessThan(quantity) {
		result.warnf("stock insuficiente para %q: pedido %s, disponible %s; se descuenta lo disponible",
			item.Name, quantity.String(), stockBefore.String())
	}

	lots, err := lotRepo.ListAvailableForUpdate(product.ID)
	if err != nil {
		return fmt.Errorf("listar lotes disponibles del producto %s: %w", product.Code, err)
	}

	now := time.Now()
	remaining := quantity
	for _, lot := range lots {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		before := lot.CurrentQuantity
		deducted := lot.Deduct(remaining)
		if err := lotRepo.UpdateQuantity(lot); err != nil {
			return fmt.Errorf("descontar lote %s: %w", lot.LotNumber, err)
		}
		if err := lotTxRepo.Create(&entity.LotTransaction{
			ID:             uuid.New().String(),
			LotID:          lot.ID,
			DocumentID:     doc.ID,
			ItemID:         item.ID,
			Type:           entity.TransactionTypeOutbound,
			Quantity:       deducted,
			QuantityBefore: before,
			QuantityAfter:  lot.CurrentQuantity,
			CreatedAt:      now,
		}); err != nil {
			return fmt.Errorf("asentar transacción del lote %s: %w", lot.LotNumber, err)
		}
		remaining = remaining.Sub(deducted)
		result.LotsDeducted++
	}

	// Lo realmente retirado puede ser menor que lo pedido si los lotes se agotaron.
	actualDeducted := quantity.Sub(remaining)
	stockAfter := stockBefore.Sub(actualDeducted)
	if stockAfter.LessThan(decimal.Zero) {
		stockAfter = decimal.Zero
	}
	if err := productRepo.UpdateStock(product.ID, stockAfter); err != nil {
		return fmt.Errorf("actualizar saldo del producto %s: %w", product.Code, err)
	}

	// Un único asiento a nivel producto por el efecto neto, aunque la línea haya
	// tocado varios lotes.
	if err := productTxRepo.Create(&entity.ProductTransaction{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		DocumentID:  doc.ID,
		ItemID:      item.ID,
		Type:        entity.TransactionTypeOutbound,
		Quantity:    actualDeducted,
		StockBefore: stockBefore,
		StockAfter:  stockAfter,
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("asentar transacción del producto %s: %w", product.Code, err)
	}

	if remaining.GreaterThan(decimal.Zero) {
		result.warnf("lotes agotados para %q: quedaron %s sin cubrir", item.Name, remaining.String())
	}

	result.StockUpdated++
	return nil
}
