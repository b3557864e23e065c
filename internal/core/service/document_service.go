package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// DocumentService implements use-cases over document metadata.
type DocumentService struct {
	auditor
	repo ports.DocumentRepository
	log  zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, audit ports.AuditSink, log zerolog.Logger) *DocumentService {
	return &DocumentService{auditor: auditor{sink: audit}, repo: repo, log: log}
}

func (s *DocumentService) List(ctx context.Context, p domain.Principal) ([]domain.Document, error) {
	filter := ports.DocumentFilter{}
	switch p.Role {
	case domain.RoleAdmin:
	case domain.RoleManager:
		filter.CreatedBy = p.ID
	default:
		return nil, s.deny(p, domain.ActionRead, "document", "")
	}
	return s.repo.List(ctx, filter)
}

func (s *DocumentService) Create(ctx context.Context, p domain.Principal, input ports.CreateDocumentInput) (*domain.Document, error) {
	if p.Role != domain.RoleAdmin && p.Role != domain.RoleManager {
		return nil, s.deny(p, domain.ActionCreate, "document", "")
	}

	doc := &domain.Document{
		ClientID:   input.ClientID,
		CreatedBy:  p.ID,
		Name:       input.Name,
		FileURL:    input.FileURL,
		UploadedAt: time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to create document")
		return nil, err
	}

	s.record(p, domain.ActionCreate, "document", created.ID)
	return created, nil
}

func (s *DocumentService) Delete(ctx context.Context, p domain.Principal, id string) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionDelete, doc); err != nil {
		return s.deny(p, domain.ActionDelete, "document", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("document_id", id).Msg("failed to delete document")
		return err
	}

	s.record(p, domain.ActionDelete, "document", id)
	return nil
}

func (s *DocumentService) ToggleVisibility(ctx context.Context, p domain.Principal, id string) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionToggleVisibility, doc); err != nil {
		return nil, s.deny(p, domain.ActionToggleVisibility, "document", id)
	}

	doc.Visible = !doc.Visible
	if err := s.repo.SetVisibility(ctx, id, doc.Visible); err != nil {
		s.log.Error().Err(err).Str("document_id", id).Msg("failed to toggle document visibility")
		return nil, err
	}

	s.record(p, domain.ActionToggleVisibility, "document", id)
	return doc, nil
}
