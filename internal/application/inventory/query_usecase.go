package inventory

import (
	"errors"
	"time"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// QueryUseCase expone la superficie de solo lectura para dashboards y
// conciliación: tareas de inventario, lotes por producto y los dos ledgers.
// Las lecturas son concurrentes con el motor y toleran snapshots eventuales.
type QueryUseCase struct {
	taskRepo      repository.InventoryTaskRepository
	lotRepo       repository.LotRepository
	lotTxRepo     repository.LotTransactionRepository
	productTxRepo repository.ProductTransactionRepository
	auditRepo     repository.AuditLogRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	taskRepo repository.InventoryTaskRepository,
	lotRepo repository.LotRepository,
	lotTxRepo repository.LotTransactionRepository,
	productTxRepo repository.ProductTransactionRepository,
	auditRepo repository.AuditLogRepository,
) *QueryUseCase {
	return &QueryUseCase{
		taskRepo:      taskRepo,
		lotRepo:       lotRepo,
		lotTxRepo:     lotTxRepo,
		productTxRepo: productTxRepo,
		auditRepo:     auditRepo,
	}
}

// ListTasks lista tareas filtrando opcionalmente por status y tipo.
func (uc *QueryUseCase) ListTasks(status, taskType string, limit, offset int) ([]dto.TaskResponse, error) {
	tasks, err := uc.taskRepo.List(status, taskType, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, dto.TaskFromEntity(t))
	}
	return out, nil
}

// TaskDetail agrupa una tarea con sus entradas de auditoría.
type TaskDetail struct {
	Task  dto.TaskResponse
	Audit []*entity.AuditLog
}

// GetTask devuelve una tarea con su rastro de auditoría.
func (uc *QueryUseCase) GetTask(id string) (*TaskDetail, error) {
	task, err := uc.taskRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	audit, err := uc.auditRepo.ListByRecord(task.ID, 50, 0)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return &TaskDetail{Task: dto.TaskFromEntity(task), Audit: audit}, nil
}

// ListLotsByProduct lista los lotes de un producto (disponibles y agotados).
func (uc *QueryUseCase) ListLotsByProduct(productID string, limit, offset int) ([]dto.LotResponse, error) {
	lots, err := uc.lotRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.LotFromEntity(l))
	}
	return out, nil
}

// ListLotTransactions lista el ledger de un lote.
func (uc *QueryUseCase) ListLotTransactions(lotID string, limit, offset int) ([]dto.LotTransactionResponse, error) {
	txs, err := uc.lotTxRepo.ListByLot(lotID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.LotTransactionResponse{
			ID:             tx.ID,
			LotID:          tx.LotID,
			DocumentID:     tx.DocumentID,
			ItemID:         tx.ItemID,
			Type:           tx.Type,
			Quantity:       tx.Quantity,
			QuantityBefore: tx.QuantityBefore,
			QuantityAfter:  tx.QuantityAfter,
			CreatedAt:      tx.CreatedAt,
		})
	}
	return out, nil
}

// ListProductTransactions lista el ledger agregado de un producto, con filtro
// opcional por rango de fechas.
func (uc *QueryUseCase) ListProductTransactions(productID string, from, to *time.Time, limit, offset int) ([]dto.ProductTransactionResponse, error) {
	txs, err := uc.productTxRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.ProductTransactionResponse{
			ID:          tx.ID,
			ProductID:   tx.ProductID,
			DocumentID:  tx.DocumentID,
			ItemID:      tx.ItemID,
			Type:        tx.Type,
			Quantity:    tx.Quantity,
			StockBefore: tx.StockBefore,
			StockAfter:  tx.StockAfter,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return out, nil
}
