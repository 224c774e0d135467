// Seed de datos de demostración: productos, documentos de compra y venta con sus
// líneas. Útil para probar el motor en local:
//
//	go run ./cmd/seed
//	curl -X POST .../api/documents/<id-order>/complete
//	curl -X POST .../api/documents/<id-estimate>/complete
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lotes-api/pkg/config"
	"github.com/jhoicas/lotes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	now := time.Now()
	productID := uuid.New().String()
	orderID := uuid.New().String()
	estimateID := uuid.New().String()
	supplierID := uuid.New().String()
	customerID := uuid.New().String()

	_, err = pool.Exec(ctx, `
		INSERT INTO products (id, code, name, unit, current_stock, created_at, updated_at)
		VALUES ($1, 'SKU-001', 'Tornillo hexagonal M8', 'EA', 0, $2, $2)
		ON CONFLICT (code) DO NOTHING`, productID, now)
	if err != nil {
		log.Fatal().Err(err).Msg("seed producto")
	}

	// Documento de compra completado con dos líneas: una vinculada y una libre.
	_, err = pool.Exec(ctx, `
		INSERT INTO documents (id, number, type, counterparty_id, expected_date, status, created_at)
		VALUES ($1, 'ORD-2026-0001', 'order', $2, $3, 'completed', $3)`,
		orderID, supplierID, now)
	if err != nil {
		log.Fatal().Err(err).Msg("seed documento de compra")
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO document_items (id, document_id, product_id, name, spec, quantity_text, unit, unit_price, amount, position)
		VALUES
			($1, $3, $4, 'Tornillo hexagonal M8', 'M8 x 40mm', '100 EA', 'EA', $5, $6, 1),
			($2, $3, NULL, 'Flete y manejo', '', '1', 'SVC', $7, $7, 2)`,
		uuid.New().String(), uuid.New().String(), orderID, productID,
		decimal.NewFromInt(1000), decimal.NewFromInt(100000), decimal.NewFromInt(35000))
	if err != nil {
		log.Fatal().Err(err).Msg("seed líneas de compra")
	}

	// Documento de venta completado que consumirá del lote anterior vía FIFO.
	_, err = pool.Exec(ctx, `
		INSERT INTO documents (id, number, type, counterparty_id, expected_date, status, created_at)
		VALUES ($1, 'EST-2026-0001', 'estimate', $2, $3, 'completed', $3)`,
		estimateID, customerID, now)
	if err != nil {
		log.Fatal().Err(err).Msg("seed documento de venta")
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO document_items (id, document_id, product_id, name, spec, quantity_text, unit, unit_price, amount, position)
		VALUES ($1, $2, $3, 'Tornillo hexagonal M8', 'M8 x 40mm', '60', 'EA', $4, $5, 1)`,
		uuid.New().String(), estimateID, productID,
		decimal.NewFromInt(1500), decimal.NewFromInt(90000))
	if err != nil {
		log.Fatal().Err(err).Msg("seed línea de venta")
	}

	log.Info().
		Str("order_id", orderID).
		Str("estimate_id", estimateID).
		Str("product_id", productID).
		Msg("datos de demostración creados")
}
