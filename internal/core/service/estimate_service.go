package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// EstimateService implements use-cases over estimates and acts. The two share
// a collection; every repository call pins is_act explicitly.
type EstimateService struct {
	auditor
	repo ports.EstimateRepository
	log  zerolog.Logger
}

func NewEstimateService(repo ports.EstimateRepository, audit ports.AuditSink, log zerolog.Logger) *EstimateService {
	return &EstimateService{auditor: auditor{sink: audit}, repo: repo, log: log}
}

// List returns estimates scoped to the principal: admins see all, managers
// their own, designers the estimates assigned to them.
func (s *EstimateService) List(ctx context.Context, p domain.Principal) ([]domain.Estimate, error) {
	filter := ports.EstimateFilter{IsAct: false}
	switch p.Role {
	case domain.RoleAdmin:
	case domain.RoleManager:
		filter.CreatedBy = p.ID
	case domain.RoleDesigner:
		filter.DesignerID = p.ID
	default:
		return nil, s.deny(p, domain.ActionRead, "estimate", "")
	}
	return s.repo.List(ctx, filter)
}

func (s *EstimateService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error) {
	estimate, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionRead, estimate); err != nil {
		return nil, s.deny(p, domain.ActionRead, "estimate", id)
	}
	return estimate, nil
}

func (s *EstimateService) Create(ctx context.Context, p domain.Principal, input ports.CreateEstimateInput) (*domain.Estimate, error) {
	if p.Role != domain.RoleAdmin && p.Role != domain.RoleManager {
		return nil, s.deny(p, domain.ActionCreate, "estimate", "")
	}

	now := time.Now().UTC()
	estimate := &domain.Estimate{
		ClientID:   input.ClientID,
		CreatedBy:  p.ID,
		DesignerID: input.DesignerID,
		Title:      input.Title,
		Status:     domain.EstimateDraft,
		IsAct:      input.IsAct,
		Items:      toWorkItems(input.Items),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	estimate.RecalculateTotal()

	created, err := s.repo.Create(ctx, estimate)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to create estimate")
		return nil, err
	}

	s.record(p, domain.ActionCreate, entityName(created.IsAct), created.ID)
	return created, nil
}

func (s *EstimateService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateEstimateInput) (*domain.Estimate, error) {
	estimate, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionUpdate, estimate); err != nil {
		return nil, s.deny(p, domain.ActionUpdate, "estimate", id)
	}

	// Full replace: the request carries the complete new state, same as
	// client updates. Required fields are enforced at the handler.
	estimate.Title = input.Title
	estimate.Status = input.Status
	estimate.DesignerID = input.DesignerID
	estimate.Items = toWorkItems(input.Items)
	estimate.RecalculateTotal()
	estimate.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, estimate); err != nil {
		s.log.Error().Err(err).Str("estimate_id", id).Msg("failed to update estimate")
		return nil, err
	}

	s.record(p, domain.ActionUpdate, "estimate", id)
	return estimate, nil
}

func (s *EstimateService) Delete(ctx context.Context, p domain.Principal, id string) error {
	estimate, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionDelete, estimate); err != nil {
		return s.deny(p, domain.ActionDelete, "estimate", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("estimate_id", id).Msg("failed to delete estimate")
		return err
	}

	s.record(p, domain.ActionDelete, "estimate", id)
	return nil
}

// ListActs returns completion acts with the same scoping as List.
func (s *EstimateService) ListActs(ctx context.Context, p domain.Principal) ([]domain.Estimate, error) {
	filter := ports.EstimateFilter{IsAct: true}
	switch p.Role {
	case domain.RoleAdmin:
	case domain.RoleManager:
		filter.CreatedBy = p.ID
	case domain.RoleDesigner:
		filter.DesignerID = p.ID
	default:
		return nil, s.deny(p, domain.ActionRead, "act", "")
	}
	return s.repo.List(ctx, filter)
}

// ToggleActVisibility flips the portal visibility of an act.
func (s *EstimateService) ToggleActVisibility(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error) {
	act, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, domain.ErrEstimateNotFound) {
			return nil, domain.ErrActNotFound
		}
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionToggleVisibility, act); err != nil {
		return nil, s.deny(p, domain.ActionToggleVisibility, "act", id)
	}

	act.Visible = !act.Visible
	if err := s.repo.SetVisibility(ctx, id, act.Visible); err != nil {
		s.log.Error().Err(err).Str("act_id", id).Msg("failed to toggle act visibility")
		return nil, err
	}

	s.record(p, domain.ActionToggleVisibility, "act", id)
	return act, nil
}

func entityName(isAct bool) string {
	if isAct {
		return "act"
	}
	return "estimate"
}

func toWorkItems(items []ports.WorkItemInput) []domain.WorkItem {
	out := make([]domain.WorkItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.WorkItem{
			Name:     it.Name,
			Unit:     it.Unit,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return out
}
