package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo adaptador del registro de auditoría (usable con pool o tx).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create asienta una entrada de auditoría.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, kind, record_id, payload, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	createdBy := (*string)(nil)
	if log.CreatedBy != "" {
		createdBy = &log.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.Kind, log.RecordID, log.Payload, createdBy, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByRecord lista las entradas que referencian un registro (ej. una tarea).
func (r *AuditLogRepo) ListByRecord(recordID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, kind, record_id, payload, COALESCE(created_by, ''), created_at
		FROM audit_logs WHERE record_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, recordID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.Kind, &l.RecordID, &l.Payload, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
