package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger (a nivel lote y a nivel producto).
const (
	TransactionTypeInbound  = "inbound"  // entrada por compra completada
	TransactionTypeOutbound = "outbound" // salida FIFO por venta completada
)

// LotTransaction es el registro inmutable de un movimiento contra un lote concreto
// (creación de entrada o descuento de salida), con cantidad antes/después.
// Append-only: nunca se actualiza ni se borra.
type LotTransaction struct {
	ID             string
	LotID          string
	DocumentID     string // documento que originó el movimiento
	ItemID         string // línea del documento (clave de idempotencia junto con DocumentID)
	Type           string // inbound | outbound
	Quantity       decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	CreatedAt      time.Time
}
