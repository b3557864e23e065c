package ports

import (
	"context"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// DocumentFilter narrows document queries.
type DocumentFilter struct {
	CreatedBy   string
	ClientID    string
	VisibleOnly bool
}

// DocumentRepository persists document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)
	Delete(ctx context.Context, id string) error
	SetVisibility(ctx context.Context, id string, visible bool) error
}

// CreateDocumentInput carries the fields for a new document record.
type CreateDocumentInput struct {
	ClientID string
	Name     string
	FileURL  string
}

// DocumentService defines use-case operations over documents.
type DocumentService interface {
	List(ctx context.Context, p domain.Principal) ([]domain.Document, error)
	Create(ctx context.Context, p domain.Principal, input CreateDocumentInput) (*domain.Document, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
	ToggleVisibility(ctx context.Context, p domain.Principal, id string) (*domain.Document, error)
}
