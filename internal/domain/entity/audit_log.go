package entity

import (
	"encoding/json"
	"time"
)

// Tipos de entrada de auditoría emitidas por el motor.
const (
	AuditKindAutoProcess = "AUTO_PROCESS" // una entrada resumen por corrida del procesador
)

// AuditLog es una entrada del registro de auditoría. El motor emite exactamente una
// por corrida, referenciando la tarea de inventario y con el resumen (conteos,
// advertencias) como payload JSON.
type AuditLog struct {
	ID        string
	Kind      string
	RecordID  string // id de la tarea de inventario referenciada
	Payload   json.RawMessage
	CreatedBy string
	CreatedAt time.Time
}
