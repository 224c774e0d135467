// Package domain define los errores y tipos compartidos del núcleo de inventario.
package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrDocumentNotFound     = errors.New("documento no encontrado")
	ErrDocumentNotCompleted = errors.New("el documento no está en estado completed")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrTaskNotFound         = errors.New("tarea de inventario no encontrada")
)
