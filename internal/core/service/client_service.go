package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// ClientService implements CRUD over client records with per-request policy
// checks.
type ClientService struct {
	auditor
	repo        ports.ClientRepository
	portalUsers ports.ClientUserRepository
	log         zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, portalUsers ports.ClientUserRepository, audit ports.AuditSink, log zerolog.Logger) *ClientService {
	return &ClientService{auditor: auditor{sink: audit}, repo: repo, portalUsers: portalUsers, log: log}
}

// List returns the clients the principal may see: admins see everything,
// managers only their own portfolio.
func (s *ClientService) List(ctx context.Context, p domain.Principal) ([]domain.Client, error) {
	switch p.Role {
	case domain.RoleAdmin:
		return s.repo.List(ctx)
	case domain.RoleManager:
		return s.repo.ListByManager(ctx, p.ID)
	default:
		return nil, s.deny(p, domain.ActionRead, "client", "")
	}
}

// ListByManager serves GET /clients/manager/:managerId. A manager may only
// request their own id; admins may request anyone's.
func (s *ClientService) ListByManager(ctx context.Context, p domain.Principal, managerID string) ([]domain.Client, error) {
	if p.Role != domain.RoleAdmin && !(p.Role == domain.RoleManager && p.ID == managerID) {
		return nil, s.deny(p, domain.ActionRead, "client", "")
	}
	return s.repo.ListByManager(ctx, managerID)
}

func (s *ClientService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionRead, client); err != nil {
		return nil, s.deny(p, domain.ActionRead, "client", id)
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, p domain.Principal, input ports.CreateClientInput) (*domain.Client, error) {
	if p.Role != domain.RoleAdmin && p.Role != domain.RoleManager {
		return nil, s.deny(p, domain.ActionCreate, "client", "")
	}

	now := time.Now().UTC()
	client := &domain.Client{
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		CreatedBy: p.ID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create client")
		return nil, err
	}

	s.record(p, domain.ActionCreate, "client", created.ID)
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionUpdate, client); err != nil {
		return nil, s.deny(p, domain.ActionUpdate, "client", id)
	}

	client.Name = input.Name
	client.Phone = input.Phone
	client.Email = input.Email
	client.Address = input.Address
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, client); err != nil {
		s.log.Error().Err(err).Str("client_id", id).Msg("failed to update client")
		return nil, err
	}

	s.record(p, domain.ActionUpdate, "client", id)
	return client, nil
}

// CreatePortalLogin provisions a portal account for the client so they can
// sign in and view what is shared with them. Ownership follows the client
// record: a manager may only issue logins for their own clients.
func (s *ClientService) CreatePortalLogin(ctx context.Context, p domain.Principal, clientID string, input ports.CreatePortalLoginInput) (*domain.ClientUser, error) {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.ActionCreate, client); err != nil {
		return nil, s.deny(p, domain.ActionCreate, "client_user", clientID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cu := &domain.ClientUser{
		ClientID:     client.ID,
		Username:     input.Username,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.portalUsers.Create(ctx, cu)
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.log.Error().Err(err).Str("client_id", clientID).Msg("failed to create portal login")
		}
		return nil, err
	}

	s.record(p, domain.ActionCreate, "client_user", created.ID)
	return created, nil
}

// Deactivate soft-deletes the client; records are never removed.
func (s *ClientService) Deactivate(ctx context.Context, p domain.Principal, id string) error {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.ActionDelete, client); err != nil {
		return s.deny(p, domain.ActionDelete, "client", id)
	}

	if err := s.repo.SetActive(ctx, id, false); err != nil {
		s.log.Error().Err(err).Str("client_id", id).Msg("failed to deactivate client")
		return err
	}

	s.record(p, domain.ActionDelete, "client", id)
	return nil
}
