package ports

import (
	"context"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// ClientRepository persists client records.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	ListByManager(ctx context.Context, managerID string) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	SetActive(ctx context.Context, id string, active bool) error
}

// CreateClientInput carries the fields a manager supplies for a new client.
type CreateClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// UpdateClientInput carries the mutable client fields.
type UpdateClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// CreatePortalLoginInput carries credentials for a new portal login tied to
// an existing client.
type CreatePortalLoginInput struct {
	Username string
	Password string
}

// ClientService defines use-case operations over clients. Every scoped
// operation loads the record first, then consults the access policy.
type ClientService interface {
	List(ctx context.Context, p domain.Principal) ([]domain.Client, error)
	ListByManager(ctx context.Context, p domain.Principal, managerID string) ([]domain.Client, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Client, error)
	Create(ctx context.Context, p domain.Principal, input CreateClientInput) (*domain.Client, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateClientInput) (*domain.Client, error)
	Deactivate(ctx context.Context, p domain.Principal, id string) error
	CreatePortalLogin(ctx context.Context, p domain.Principal, clientID string, input CreatePortalLoginInput) (*domain.ClientUser, error)
}
