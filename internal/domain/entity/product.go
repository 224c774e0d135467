package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su saldo agregado de stock.
// Invariante: CurrentStock es igual a la suma de CurrentQuantity de todos los lotes
// del producto con estado available (el motor escribe lote y saldo en la misma
// transacción por item; lecturas para dashboards pueden ver snapshots eventuales).
type Product struct {
	ID           string
	Code         string // código único del producto
	Name         string
	Unit         string
	CurrentStock decimal.Decimal // saldo agregado, nunca negativo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
