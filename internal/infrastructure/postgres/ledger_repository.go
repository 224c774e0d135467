package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.LotTransactionRepository = (*LotTransactionRepo)(nil)
var _ repository.ProductTransactionRepository = (*ProductTransactionRepo)(nil)

// LotTransactionRepo ledger append-only a granularidad lote (usable con pool o tx).
type LotTransactionRepo struct {
	q Querier
}

// NewLotTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotTransactionRepository(q Querier) *LotTransactionRepo {
	return &LotTransactionRepo{q: q}
}

// Create asienta un movimiento de lote. No existe Update ni Delete sobre esta tabla.
func (r *LotTransactionRepo) Create(tx *entity.LotTransaction) error {
	query := `
		INSERT INTO lot_transactions (id, lot_id, document_id, item_id, type, quantity, quantity_before, quantity_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.LotID, tx.DocumentID, tx.ItemID, tx.Type,
		tx.Quantity, tx.QuantityBefore, tx.QuantityAfter, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot transaction: %w", err)
	}
	return nil
}

// ListByLot lista los movimientos de un lote en orden de asiento.
func (r *LotTransactionRepo) ListByLot(lotID string, limit, offset int) ([]*entity.LotTransaction, error) {
	query := `
		SELECT id, lot_id, document_id, item_id, type, quantity, quantity_before, quantity_after, created_at
		FROM lot_transactions WHERE lot_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, lotID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lot transactions: %w", err)
	}
	defer rows.Close()
	return collectLotTransactions(rows)
}

func collectLotTransactions(rows pgx.Rows) ([]*entity.LotTransaction, error) {
	var txs []*entity.LotTransaction
	for rows.Next() {
		var t entity.LotTransaction
		if err := rows.Scan(
			&t.ID, &t.LotID, &t.DocumentID, &t.ItemID, &t.Type,
			&t.Quantity, &t.QuantityBefore, &t.QuantityAfter, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot transaction: %w", err)
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}

// ProductTransactionRepo ledger append-only a granularidad producto (usable con pool o tx).
type ProductTransactionRepo struct {
	q Querier
}

// NewProductTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTransactionRepository(q Querier) *ProductTransactionRepo {
	return &ProductTransactionRepo{q: q}
}

// Create asienta un movimiento agregado del producto.
func (r *ProductTransactionRepo) Create(tx *entity.ProductTransaction) error {
	query := `
		INSERT INTO product_transactions (id, product_id, document_id, item_id, type, quantity, stock_before, stock_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ProductID, tx.DocumentID, tx.ItemID, tx.Type,
		tx.Quantity, tx.StockBefore, tx.StockAfter, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product transaction: %w", err)
	}
	return nil
}

// ExistsForItem indica si ya hay un asiento para la línea (documento, item).
// Check de idempotencia del motor: corre dentro de la transacción por línea, tras
// el bloqueo del producto, así dos reintentos concurrentes no ven ambos "no existe".
func (r *ProductTransactionRepo) ExistsForItem(documentID, itemID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM product_transactions WHERE document_id = $1 AND item_id = $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, documentID, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists product transaction: %w", err)
	}
	return exists, nil
}

// ListByProduct lista los asientos de un producto con filtro opcional de fechas.
func (r *ProductTransactionRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.ProductTransaction, error) {
	query := `
		SELECT id, product_id, document_id, item_id, type, quantity, stock_before, stock_after, created_at
		FROM product_transactions
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list product transactions: %w", err)
	}
	defer rows.Close()
	return collectProductTransactions(rows)
}

// ListByDocument lista los asientos generados por un documento.
func (r *ProductTransactionRepo) ListByDocument(documentID string) ([]*entity.ProductTransaction, error) {
	query := `
		SELECT id, product_id, document_id, item_id, type, quantity, stock_before, stock_after, created_at
		FROM product_transactions WHERE document_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list product transactions by document: %w", err)
	}
	defer rows.Close()
	return collectProductTransactions(rows)
}

func collectProductTransactions(rows pgx.Rows) ([]*entity.ProductTransaction, error) {
	var txs []*entity.ProductTransaction
	for rows.Next() {
		var t entity.ProductTransaction
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.DocumentID, &t.ItemID, &t.Type,
			&t.Quantity, &t.StockBefore, &t.StockAfter, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product transaction: %w", err)
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}
