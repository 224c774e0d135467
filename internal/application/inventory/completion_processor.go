package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	domaininv "github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/pkg/logger"
)

// ProcessResult resume una corrida del procesador de completado.
// Success distingue "el motor corrió" de "cada línea actualizó inventario sin
// problemas": errores por línea no lo vuelven false. Quien necesite semántica
// todo-o-nada debe inspeccionar len(Errors) == 0.
type ProcessResult struct {
	Success      bool
	TaskID       string
	LotsCreated  int
	LotsDeducted int
	StockUpdated int
	Warnings     []string
	Errors       []string
}

func (r *ProcessResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *ProcessResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// CompletionProcessor es el orquestador que se invoca cuando un documento pasa a
// completed. Resuelve la tarea de inventario (lookup-or-create idempotente),
// despacha cada línea vinculada al flujo de entrada (order) o de salida FIFO
// (estimate), marca la tarea completada y emite una entrada de auditoría resumen.
type CompletionProcessor struct {
	txRunner      TxRunner
	documentRepo  repository.DocumentRepository
	taskRepo      repository.InventoryTaskRepository
	lotNumberRepo repository.LotNumberRepository
	auditRepo     repository.AuditLogRepository
	log           *logger.Logger
}

// NewCompletionProcessor construye el procesador.
func NewCompletionProcessor(
	txRunner TxRunner,
	documentRepo repository.DocumentRepository,
	taskRepo repository.InventoryTaskRepository,
	lotNumberRepo repository.LotNumberRepository,
	auditRepo repository.AuditLogRepository,
	log *logger.Logger,
) *CompletionProcessor {
	return &CompletionProcessor{
		txRunner:      txRunner,
		documentRepo:  documentRepo,
		taskRepo:      taskRepo,
		lotNumberRepo: lotNumberRepo,
		auditRepo:     auditRepo,
		log:           log,
	}
}

// Process ejecuta la corrida de inventario para un documento completado.
//
// Errores fatales (documento inexistente, documento no completed, líneas ilegibles,
// fallo de lookup/create de la tarea) abortan la corrida sin mutar el ledger y se
// devuelven como error junto con Success=false. Errores por línea se capturan en
// Errors y el procesamiento continúa con la siguiente línea.
func (uc *CompletionProcessor) Process(ctx context.Context, documentID, actorID string) (*ProcessResult, error) {
	result := &ProcessResult{}

	// 1. Precondición dura: el documento existe y está en estado final.
	doc, err := uc.documentRepo.GetByID(documentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		result.errorf("cargar documento %s: %v", documentID, err)
		return result, err
	}
	if doc == nil || errors.Is(err, domain.ErrNotFound) {
		result.errorf("documento %s no encontrado", documentID)
		return result, domain.ErrDocumentNotFound
	}
	if !doc.IsCompleted() {
		result.errorf("documento %s en estado %s, se requiere completed", doc.Number, doc.Status)
		return result, domain.ErrDocumentNotCompleted
	}

	// 2. Cargar líneas y separar vinculadas de desvinculadas. Una línea sin producto
	// es intencional (informativa): advertencia, nunca error.
	items, err := uc.documentRepo.ListItems(documentID)
	if err != nil {
		result.errorf("cargar líneas del documento %s: %v", doc.Number, err)
		return result, err
	}
	linked := make([]*entity.DocumentItem, 0, len(items))
	for _, item := range items {
		if !item.IsLinked() {
			result.warnf("línea %q sin producto vinculado, se omite", item.Name)
			continue
		}
		linked = append(linked, item)
	}

	// 3-4. Resolver la tarea (idempotente por document_id). Cero líneas vinculadas
	// sigue siendo una corrida válida: la tarea se crea y se completa sin efectos.
	task, err := uc.resolveTask(doc)
	if err != nil {
		result.errorf("resolver tarea de inventario del documento %s: %v", doc.Number, err)
		return result, err
	}
	result.TaskID = task.ID

	// 5. Despachar cada línea vinculada de forma aislada: una línea mala no aborta
	// el documento. Cada línea corre en su propia transacción.
	for _, item := range linked {
		quantity := domaininv.ParseQuantity(item.QuantityText)
		if !quantity.GreaterThan(decimal.Zero) {
			result.warnf("línea %q con cantidad no positiva (%q), se omite", item.Name, item.QuantityText)
			continue
		}
		err := uc.txRunner.Run(ctx, func(
			lotRepo repository.LotRepository,
			lotTxRepo repository.LotTransactionRepository,
			productRepo repository.ProductRepository,
			productTxRepo repository.ProductTransactionRepository,
		) error {
			if doc.Type == entity.DocumentTypeOrder {
				return uc.processInboundItem(lotRepo, lotTxRepo, productRepo, productTxRepo, doc, item, quantity, result)
			}
			return uc.processOutboundItem(lotRepo, lotTxRepo, productRepo, productTxRepo, doc, item, quantity, result)
		})
		if err != nil {
			uc.log.Error().Err(err).
				Str("document", doc.Number).
				Str("item", item.Name).
				Msg("fallo procesando línea de inventario")
			result.errorf("línea %q: %v", item.Name, err)
		}
	}

	// 6. La tarea se completa siempre que todas las líneas fueron intentadas, con o
	// sin advertencias/errores por línea.
	task.Complete(actorID, time.Now())
	if err := uc.taskRepo.MarkCompleted(task); err != nil {
		result.errorf("marcar tarea %s como completada: %v", task.ID, err)
	}

	// 7. Una entrada de auditoría resumen por corrida, referenciando la tarea.
	uc.recordAudit(doc, task, actorID, result)

	// 8. El motor corrió: Success=true aunque haya errores por línea.
	result.Success = true
	return result, nil
}

// resolveTask busca la tarea por document_id y la crea si no existe. El constraint
// UNIQUE sobre document_id cierra la carrera create-vs-create: ante ErrDuplicate se
// relee la tarea que ganó.
func (uc *CompletionProcessor) resolveTask(doc *entity.Document) (*entity.InventoryTask, error) {
	task, err := uc.taskRepo.GetByDocumentID(doc.ID)
	if err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, err
	}
	if task != nil {
		return task, nil
	}

	task = &entity.InventoryTask{
		ID:             uuid.New().String(),
		DocumentID:     doc.ID,
		DocumentNumber: doc.Number,
		DocumentType:   doc.Type,
		TaskType:       entity.TaskTypeForDocument(doc.Type),
		CounterpartyID: doc.CounterpartyID,
		ExpectedDate:   doc.ExpectedDate,
		Status:         entity.TaskStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := uc.taskRepo.Create(task); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return uc.taskRepo.GetByDocumentID(doc.ID)
		}
		return nil, err
	}
	return task, nil
}

// auditPayload es el resumen JSON de la corrida para el registro de auditoría.
type auditPayload struct {
	DocumentID   string   `json:"document_id"`
	DocumentType string   `json:"document_type"`
	TaskType     string   `json:"task_type"`
	LotsCreated  int      `json:"lots_created"`
	LotsDeducted int      `json:"lots_deducted"`
	StockUpdated int      `json:"stock_updated"`
	Warnings     []string `json:"warnings,omitempty"`
}

func (uc *CompletionProcessor) recordAudit(doc *entity.Document, task *entity.InventoryTask, actorID string, result *ProcessResult) {
	payload, err := json.Marshal(auditPayload{
		DocumentID:   doc.ID,
		DocumentType: doc.Type,
		TaskType:     task.TaskType,
		LotsCreated:  result.LotsCreated,
		LotsDeducted: result.LotsDeducted,
		StockUpdated: result.StockUpdated,
		Warnings:     result.Warnings,
	})
	if err != nil {
		result.errorf("serializar auditoría: %v", err)
		return
	}
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		Kind:      entity.AuditKindAutoProcess,
		RecordID:  task.ID,
		Payload:   payload,
		CreatedBy: actorID,
		CreatedAt: time.Now(),
	}
	if err := uc.auditRepo.Create(entry); err != nil {
		uc.log.Error().Err(err).Str("task", task.ID).Msg("no se pudo escribir la entrada de auditoría")
		result.errorf("registrar auditoría de la tarea %s: %v", task.ID, err)
	}
}
