package ports

import (
	"context"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// CreateUserInput carries the fields for a new backoffice account.
type CreateUserInput struct {
	Username     string
	Password     string
	Role         string
	DesignerType string
	Name         string
}

// UpdateUserInput carries the mutable account fields. Password is optional;
// empty means keep the current hash.
type UpdateUserInput struct {
	Name         string
	Password     string
	DesignerType string
}

// UserService defines admin operations over backoffice accounts.
type UserService interface {
	List(ctx context.Context, p domain.Principal) ([]domain.User, error)
	Create(ctx context.Context, p domain.Principal, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, p domain.Principal, id string) error
}

// PortalService serves the client-facing read endpoints. Every query is
// pre-filtered by the principal's client id, so a foreign id never even
// reaches the store.
type PortalService interface {
	Profile(ctx context.Context, p domain.Principal) (*domain.Client, error)
	Estimates(ctx context.Context, p domain.Principal) ([]domain.Estimate, error)
	Documents(ctx context.Context, p domain.Principal) ([]domain.Document, error)
}
