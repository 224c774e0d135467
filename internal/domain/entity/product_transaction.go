package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductTransaction es el registro inmutable de un movimiento contra el saldo
// agregado de un producto, con stock antes/después. Espejo del LotTransaction pero
// a granularidad producto: una salida que consume varios lotes produce varios
// LotTransaction y exactamente un ProductTransaction por el efecto neto.
type ProductTransaction struct {
	ID          string
	ProductID   string
	DocumentID  string
	ItemID      string // línea del documento (clave de idempotencia junto con DocumentID)
	Type        string // inbound | outbound
	Quantity    decimal.Decimal
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	CreatedAt   time.Time
}
