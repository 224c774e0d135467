package repository

import "github.com/jhoicas/lotes-api/internal/domain/entity"

// LotRepository define el puerto de persistencia para lotes de inventario.
type LotRepository interface {
	Create(lot *entity.InventoryLot) error
	GetByID(id string) (*entity.InventoryLot, error)
	// ListAvailableForUpdate devuelve los lotes del producto con status available y
	// cantidad restante > 0, ordenados por received_at y luego created_at (FIFO
	// estricto), bloqueando las filas (FOR UPDATE) dentro de la transacción actual.
	ListAvailableForUpdate(productID string) ([]*entity.InventoryLot, error)
	// UpdateQuantity persiste la cantidad restante y el estado tras un descuento.
	UpdateQuantity(lot *entity.InventoryLot) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLot, error)
}

// LotNumberRepository emite números de lote únicos y monotónicos. La emisión es
// atómica bajo llamadas concurrentes (secuencia de base de datos).
type LotNumberRepository interface {
	Next() (string, error)
}
