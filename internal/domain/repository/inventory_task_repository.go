package repository

import "github.com/jhoicas/lotes-api/internal/domain/entity"

// InventoryTaskRepository define el puerto de persistencia para tareas de inventario.
// document_id tiene constraint UNIQUE: Create contra un documento ya registrado debe
// devolver domain.ErrDuplicate para que el caller haga el fallback a GetByDocumentID.
type InventoryTaskRepository interface {
	Create(task *entity.InventoryTask) error
	GetByID(id string) (*entity.InventoryTask, error)
	GetByDocumentID(documentID string) (*entity.InventoryTask, error)
	// MarkCompleted fija status=completed, completed_by y completed_at.
	MarkCompleted(task *entity.InventoryTask) error
	List(status, taskType string, limit, offset int) ([]*entity.InventoryTask, error)
}

// AuditLogRepository define el puerto del registro de auditoría (colaborador externo;
// este core solo escribe una entrada resumen por corrida).
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	ListByRecord(recordID string, limit, offset int) ([]*entity.AuditLog, error)
}
