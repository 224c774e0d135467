package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.InventoryTaskRepository = (*InventoryTaskRepo)(nil)

// InventoryTaskRepo implementación del puerto de tareas de inventario (usable con pool o tx).
type InventoryTaskRepo struct {
	q Querier
}

// NewInventoryTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTaskRepository(q Querier) *InventoryTaskRepo {
	return &InventoryTaskRepo{q: q}
}

const taskColumns = `id, document_id, document_number, document_type, task_type,
		counterparty_id, expected_date, status, assignee_id, completed_by, completed_at, created_at`

func scanTask(row pgx.Row) (*entity.InventoryTask, error) {
	var t entity.InventoryTask
	var assignee, completedBy *string
	err := row.Scan(
		&t.ID, &t.DocumentID, &t.DocumentNumber, &t.DocumentType, &t.TaskType,
		&t.CounterpartyID, &t.ExpectedDate, &t.Status, &assignee, &completedBy,
		&t.CompletedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignee != nil {
		t.AssigneeID = *assignee
	}
	if completedBy != nil {
		t.CompletedBy = *completedBy
	}
	return &t, nil
}

// Create persiste una tarea nueva. document_id tiene constraint UNIQUE: contra un
// documento ya registrado devuelve domain.ErrDuplicate para que el caller relea la
// tarea existente (idempotencia lookup-or-create).
func (r *InventoryTaskRepo) Create(task *entity.InventoryTask) error {
	query := `
		INSERT INTO inventory_tasks (id, document_id, document_number, document_type, task_type,
			counterparty_id, expected_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.DocumentID, task.DocumentNumber, task.DocumentType, task.TaskType,
		task.CounterpartyID, task.ExpectedDate, task.Status, task.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID. Devuelve (nil, nil) si no existe.
func (r *InventoryTaskRepo) GetByID(id string) (*entity.InventoryTask, error) {
	query := `SELECT ` + taskColumns + ` FROM inventory_tasks WHERE id = $1`
	t, err := scanTask(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory task: %w", err)
	}
	return t, nil
}

// GetByDocumentID obtiene la tarea de un documento. Devuelve domain.ErrTaskNotFound
// si el documento aún no tiene tarea.
func (r *InventoryTaskRepo) GetByDocumentID(documentID string) (*entity.InventoryTask, error) {
	query := `SELECT ` + taskColumns + ` FROM inventory_tasks WHERE document_id = $1`
	t, err := scanTask(r.q.QueryRow(context.Background(), query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get inventory task by document: %w", err)
	}
	return t, nil
}

// MarkCompleted fija status, completed_by y completed_at de la tarea.
func (r *InventoryTaskRepo) MarkCompleted(task *entity.InventoryTask) error {
	query := `
		UPDATE inventory_tasks
		SET status = $2, completed_by = $3, completed_at = $4
		WHERE id = $1`
	completedBy := (*string)(nil)
	if task.CompletedBy != "" {
		completedBy = &task.CompletedBy
	}
	tag, err := r.q.Exec(context.Background(), query, task.ID, task.Status, completedBy, task.CompletedAt)
	if err != nil {
		return fmt.Errorf("mark task completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// List lista tareas con filtros opcionales por status y tipo, más reciente primero.
func (r *InventoryTaskRepo) List(status, taskType string, limit, offset int) ([]*entity.InventoryTask, error) {
	query := `SELECT ` + taskColumns + `
		FROM inventory_tasks
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR task_type = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, status, taskType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.InventoryTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
