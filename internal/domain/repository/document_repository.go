package repository

import "github.com/jhoicas/lotes-api/internal/domain/entity"

// DocumentRepository define el puerto de lectura de documentos y sus líneas.
// El motor de inventario nunca escribe documentos: el workflow externo es el dueño.
type DocumentRepository interface {
	GetByID(id string) (*entity.Document, error)
	// ListItems devuelve las líneas del documento en su orden almacenado (Position).
	ListItems(documentID string) ([]*entity.DocumentItem, error)
}
