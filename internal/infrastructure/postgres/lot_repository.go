package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)
var _ repository.LotNumberRepository = (*LotNumberRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, product_id, lot_number, initial_quantity, current_quantity, unit,
		status, source_type, source_document_id, supplier_id, unit_cost, total_cost,
		received_at, created_at`

func scanLot(row pgx.Row) (*entity.InventoryLot, error) {
	var l entity.InventoryLot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.LotNumber, &l.InitialQuantity, &l.CurrentQuantity, &l.Unit,
		&l.Status, &l.SourceType, &l.SourceDocumentID, &l.SupplierID, &l.UnitCost, &l.TotalCost,
		&l.ReceivedAt, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo.
func (r *LotRepo) Create(lot *entity.InventoryLot) error {
	query := `
		INSERT INTO inventory_lots (id, product_id, lot_number, initial_quantity, current_quantity, unit,
			status, source_type, source_document_id, supplier_id, unit_cost, total_cost, received_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.LotNumber, lot.InitialQuantity, lot.CurrentQuantity, lot.Unit,
		lot.Status, lot.SourceType, lot.SourceDocumentID, lot.SupplierID, lot.UnitCost, lot.TotalCost,
		lot.ReceivedAt, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert lot %s: número de lote duplicado: %w", lot.LotNumber, err)
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *LotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE id = $1`
	l, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

// ListAvailableForUpdate devuelve los lotes consumibles del producto en orden FIFO
// estricto (received_at, luego created_at) y bloquea sus filas dentro de la
// transacción actual. El lote más viejo siempre se consume antes que uno más nuevo.
func (r *LotRepo) ListAvailableForUpdate(productID string) ([]*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM inventory_lots
		WHERE product_id = $1 AND status = $2 AND current_quantity > 0
		ORDER BY received_at, created_at
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, entity.LotStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("list available lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.InventoryLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// UpdateQuantity persiste la cantidad restante y el estado tras un descuento.
func (r *LotRepo) UpdateQuantity(lot *entity.InventoryLot) error {
	query := `UPDATE inventory_lots SET current_quantity = $2, status = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, lot.ID, lot.CurrentQuantity, lot.Status)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lot quantity: lote %s no encontrado", lot.ID)
	}
	return nil
}

// ListByProduct lista los lotes de un producto (todos los estados), más reciente primero.
func (r *LotRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM inventory_lots WHERE product_id = $1
		ORDER BY received_at DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lots by product: %w", err)
	}
	defer rows.Close()

	var lots []*entity.InventoryLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// LotNumberRepo emite números de lote desde la secuencia lot_number_seq: únicos y
// monotónicos bajo concurrencia (nextval es atómico).
type LotNumberRepo struct {
	q Querier
}

// NewLotNumberRepository construye el emisor de números de lote.
func NewLotNumberRepository(q Querier) *LotNumberRepo {
	return &LotNumberRepo{q: q}
}

// Next devuelve el siguiente número de lote con formato LOT-00000001.
func (r *LotNumberRepo) Next() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('lot_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next lot number: %w", err)
	}
	return fmt.Sprintf("LOT-%08d", n), nil
}
