package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// PortalService serves the client portal. Every query is pre-filtered by the
// principal's own client id, so not-found and forbidden are indistinguishable
// from the portal's point of view.
type PortalService struct {
	clients   ports.ClientRepository
	estimates ports.EstimateRepository
	documents ports.DocumentRepository
	log       zerolog.Logger
}

func NewPortalService(
	clients ports.ClientRepository,
	estimates ports.EstimateRepository,
	documents ports.DocumentRepository,
	log zerolog.Logger,
) *PortalService {
	return &PortalService{clients: clients, estimates: estimates, documents: documents, log: log}
}

func (s *PortalService) Profile(ctx context.Context, p domain.Principal) (*domain.Client, error) {
	if p.Role != domain.RoleClient || p.ClientID == "" {
		return nil, domain.ErrForbidden
	}
	client, err := s.clients.FindByID(ctx, p.ClientID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionRead, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Estimates returns the portal-visible estimates of the caller's client.
// Acts are excluded here the same way the backoffice excludes them.
func (s *PortalService) Estimates(ctx context.Context, p domain.Principal) ([]domain.Estimate, error) {
	if p.Role != domain.RoleClient || p.ClientID == "" {
		return nil, domain.ErrForbidden
	}
	return s.estimates.List(ctx, ports.EstimateFilter{
		IsAct:       false,
		ClientID:    p.ClientID,
		VisibleOnly: true,
	})
}

func (s *PortalService) Documents(ctx context.Context, p domain.Principal) ([]domain.Document, error) {
	if p.Role != domain.RoleClient || p.ClientID == "" {
		return nil, domain.ErrForbidden
	}
	return s.documents.List(ctx, ports.DocumentFilter{
		ClientID:    p.ClientID,
		VisibleOnly: true,
	})
}
