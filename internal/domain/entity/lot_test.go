package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

func newLot(current int64) *entity.InventoryLot {
	return &entity.InventoryLot{
		ID:              "l1",
		ProductID:       "p1",
		LotNumber:       "LOT-00000001",
		InitialQuantity: decimal.NewFromInt(current),
		CurrentQuantity: decimal.NewFromInt(current),
		Status:          entity.LotStatusAvailable,
	}
}

// Descuento parcial: el lote sigue disponible con el saldo restante.
func TestDeduct_Parcial(t *testing.T) {
	lot := newLot(100)

	deducted := lot.Deduct(decimal.NewFromInt(60))

	assert.True(t, decimal.NewFromInt(60).Equal(deducted))
	assert.True(t, decimal.NewFromInt(40).Equal(lot.CurrentQuantity))
	assert.Equal(t, entity.LotStatusAvailable, lot.Status)
	assert.True(t, lot.HasStock())
}

// Descuento exacto: el lote queda en cero y pasa a depleted.
func TestDeduct_Exacto(t *testing.T) {
	lot := newLot(40)

	deducted := lot.Deduct(decimal.NewFromInt(40))

	assert.True(t, decimal.NewFromInt(40).Equal(deducted))
	assert.True(t, lot.CurrentQuantity.IsZero())
	assert.Equal(t, entity.LotStatusDepleted, lot.Status)
	assert.False(t, lot.HasStock())
}

// Pedir más de lo que hay: se descuenta solo lo disponible, nunca queda saldo
// negativo.
func TestDeduct_ExcedeElSaldo(t *testing.T) {
	lot := newLot(30)

	deducted := lot.Deduct(decimal.NewFromInt(50))

	assert.True(t, decimal.NewFromInt(30).Equal(deducted), "lo descontado se acota al saldo del lote")
	assert.True(t, lot.CurrentQuantity.IsZero())
	assert.Equal(t, entity.LotStatusDepleted, lot.Status)
}

// Deduct sobre un lote ya agotado no descuenta nada.
func TestDeduct_LoteAgotado(t *testing.T) {
	lot := newLot(10)
	lot.Deduct(decimal.NewFromInt(10))

	deducted := lot.Deduct(decimal.NewFromInt(5))

	assert.True(t, deducted.IsZero())
	assert.True(t, lot.CurrentQuantity.IsZero())
}

// Las cantidades fraccionarias se descuentan sin redondeos.
func TestDeduct_Fraccionario(t *testing.T) {
	lot := newLot(10)
	q, _ := decimal.NewFromString("2.5")

	deducted := lot.Deduct(q)

	assert.True(t, q.Equal(deducted))
	want, _ := decimal.NewFromString("7.5")
	assert.True(t, want.Equal(lot.CurrentQuantity))
}
