package repository

import (
	"time"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// LotTransactionRepository define el puerto del ledger a granularidad lote.
// Append-only: no hay Update ni Delete.
type LotTransactionRepository interface {
	Create(tx *entity.LotTransaction) error
	ListByLot(lotID string, limit, offset int) ([]*entity.LotTransaction, error)
}

// ProductTransactionRepository define el puerto del ledger a granularidad producto.
// Append-only: no hay Update ni Delete.
type ProductTransactionRepository interface {
	Create(tx *entity.ProductTransaction) error
	// ExistsForItem indica si ya hay un asiento para (documento, línea). Es el check
	// de idempotencia a nivel línea: un reintento tras fallo parcial solo repone las
	// líneas que nunca asentaron.
	ExistsForItem(documentID, itemID string) (bool, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.ProductTransaction, error)
	ListByDocument(documentID string) ([]*entity.ProductTransaction, error)
}
