package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Es el punto de
	// serialización por producto: dos documentos que afectan el mismo producto se
	// ordenan en la base de datos, no en memoria.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
