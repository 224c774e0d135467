package inventory

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Cada línea de documento se procesa en su propia transacción: los
// escritos de lote, ledger y saldo de una línea hacen commit o rollback juntos, y un
// fallo en una línea no revierte las anteriores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		lotTxRepo repository.LotTransactionRepository,
		productRepo repository.ProductRepository,
		productTxRepo repository.ProductTransactionRepository,
	) error) error
}
