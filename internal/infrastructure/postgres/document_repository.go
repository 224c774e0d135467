package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo adaptador de solo lectura sobre las tablas del workflow de
// documentos. El motor nunca escribe aquí.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// GetByID obtiene un documento por ID. Devuelve (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `
		SELECT id, number, type, counterparty_id, expected_date, status, created_at
		FROM documents WHERE id = $1`
	var d entity.Document
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Number, &d.Type, &d.CounterpartyID, &d.ExpectedDate, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// ListItems devuelve las líneas del documento en su orden almacenado.
func (r *DocumentRepo) ListItems(documentID string) ([]*entity.DocumentItem, error) {
	query := `
		SELECT id, document_id, COALESCE(product_id::text, ''), name, spec, quantity_text, unit, unit_price, amount, position
		FROM document_items WHERE document_id = $1
		ORDER BY position, id`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()

	var items []*entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(
			&it.ID, &it.DocumentID, &it.ProductID, &it.Name, &it.Spec,
			&it.QuantityText, &it.Unit, &it.UnitPrice, &it.Amount, &it.Position,
		); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
