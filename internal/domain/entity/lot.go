package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de inventario.
const (
	LotStatusAvailable = "available" // con cantidad restante > 0
	LotStatusDepleted  = "depleted"  // agotado; este core nunca lo reactiva
)

// Origen del lote. Por ahora solo compras; ajustes manuales quedan fuera de este core.
const (
	LotSourcePurchase = "purchase"
)

// InventoryLot representa un lote de entrada: una partida trazable de stock con su
// propio contador de cantidad restante. Lo crea solo el flujo de entrada (compra
// completada) y lo muta solo el flujo de salida FIFO descontando CurrentQuantity.
// Invariante: 0 <= CurrentQuantity <= InitialQuantity.
type InventoryLot struct {
	ID               string
	ProductID        string
	LotNumber        string // único, emisión monotónica (secuencia en BD)
	InitialQuantity  decimal.Decimal
	CurrentQuantity  decimal.Decimal
	Unit             string
	Status           string // available | depleted
	SourceType       string // purchase
	SourceDocumentID string
	SupplierID       string // counterparty del documento de compra
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
	ReceivedAt       time.Time
	CreatedAt        time.Time
}

// HasStock indica si el lote tiene cantidad disponible.
func (l *InventoryLot) HasStock() bool {
	return l.Status == LotStatusAvailable && l.CurrentQuantity.GreaterThan(decimal.Zero)
}

// Deduct descuenta hasta quantity del lote y devuelve lo realmente descontado
// (puede ser menor si el lote no alcanza). Si la cantidad restante llega a cero,
// el lote pasa a depleted.
func (l *InventoryLot) Deduct(quantity decimal.Decimal) decimal.Decimal {
	deducted := quantity
	if deducted.GreaterThan(l.CurrentQuantity) {
		deducted = l.CurrentQuantity
	}
	l.CurrentQuantity = l.CurrentQuantity.Sub(deducted)
	if l.CurrentQuantity.LessThanOrEqual(decimal.Zero) {
		l.CurrentQuantity = decimal.Zero
		l.Status = LotStatusDepleted
	}
	return deducted
}
