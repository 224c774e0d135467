package entity

import "time"

// Estados de la tarea de inventario.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusCanceled  = "canceled" // lo dispara el flujo externo de retiro, no este core
)

// Tipos de tarea, derivados del tipo de documento.
const (
	TaskTypeInbound  = "inbound"  // order
	TaskTypeOutbound = "outbound" // estimate
)

// InventoryTask es el registro de seguimiento que liga un documento con su corrida
// de procesamiento de inventario. DocumentID es único: el lookup-or-create sobre esa
// columna es el mecanismo de idempotencia a nivel tarea (reprocesar un documento
// reutiliza la tarea, nunca crea una segunda).
type InventoryTask struct {
	ID             string
	DocumentID     string // único
	DocumentNumber string
	DocumentType   string // order | estimate
	TaskType       string // inbound | outbound
	CounterpartyID string
	ExpectedDate   *time.Time
	Status         string // pending | completed | canceled
	AssigneeID     string // metadato de asignación para dashboards
	CompletedBy    string
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

// TaskTypeForDocument deriva el tipo de tarea del tipo de documento.
func TaskTypeForDocument(documentType string) string {
	if documentType == DocumentTypeOrder {
		return TaskTypeInbound
	}
	return TaskTypeOutbound
}

// Complete marca la tarea como completada por el actor indicado.
func (t *InventoryTask) Complete(actorID string, at time.Time) {
	t.Status = TaskStatusCompleted
	t.CompletedBy = actorID
	t.CompletedAt = &at
}
