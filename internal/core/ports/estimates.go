package ports

import (
	"context"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// EstimateFilter narrows estimate queries. IsAct is always set explicitly by
// callers: estimates and acts share a collection and are never listed mixed.
type EstimateFilter struct {
	IsAct       bool
	CreatedBy   string
	DesignerID  string
	ClientID    string
	VisibleOnly bool
}

// EstimateRepository persists estimates and acts.
type EstimateRepository interface {
	Create(ctx context.Context, estimate *domain.Estimate) (*domain.Estimate, error)
	FindByID(ctx context.Context, id string, isAct bool) (*domain.Estimate, error)
	List(ctx context.Context, filter EstimateFilter) ([]domain.Estimate, error)
	Update(ctx context.Context, estimate *domain.Estimate) error
	Delete(ctx context.Context, id string) error
	SetVisibility(ctx context.Context, id string, visible bool) error
}

// WorkItemInput is one estimate line as submitted by a handler.
type WorkItemInput struct {
	Name     string
	Unit     string
	Quantity float64
	Price    float64
}

// CreateEstimateInput carries the fields for a new estimate or act.
type CreateEstimateInput struct {
	ClientID   string
	DesignerID string
	Title      string
	IsAct      bool
	Items      []WorkItemInput
}

// UpdateEstimateInput carries the mutable estimate fields.
type UpdateEstimateInput struct {
	Title      string
	Status     string
	DesignerID string
	Items      []WorkItemInput
}

// EstimateService defines use-case operations over estimates and acts.
type EstimateService interface {
	List(ctx context.Context, p domain.Principal) ([]domain.Estimate, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error)
	Create(ctx context.Context, p domain.Principal, input CreateEstimateInput) (*domain.Estimate, error)
	Update(ctx context.Context, p domain.Principal, id string, input UpdateEstimateInput) (*domain.Estimate, error)
	Delete(ctx context.Context, p domain.Principal, id string) error

	ListActs(ctx context.Context, p domain.Principal) ([]domain.Estimate, error)
	ToggleActVisibility(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error)
}
