package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// UserService implements admin management of backoffice accounts. Routes are
// already gated to admins, but the role is re-checked here so the policy does
// not depend on router wiring alone.
type UserService struct {
	auditor
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *UserService {
	return &UserService{auditor: auditor{sink: audit}, repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	if p.Role != domain.RoleAdmin {
		return nil, s.deny(p, domain.ActionRead, "user", "")
	}
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, p domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
	if p.Role != domain.RoleAdmin {
		return nil, s.deny(p, domain.ActionCreate, "user", "")
	}
	if input.Username == "" || input.Password == "" || !domain.StaffRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		DesignerType: input.DesignerType,
		Name:         input.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(p, domain.ActionCreate, "user", created.ID)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if p.Role != domain.RoleAdmin {
		return nil, s.deny(p, domain.ActionUpdate, "user", id)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.DesignerType = input.DesignerType
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.record(p, domain.ActionUpdate, "user", id)
	return user, nil
}

// Deactivate soft-deletes the account; existing sessions expire on their own
// TTL and the login path rejects inactive users.
func (s *UserService) Deactivate(ctx context.Context, p domain.Principal, id string) error {
	if p.Role != domain.RoleAdmin {
		return s.deny(p, domain.ActionDelete, "user", id)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to deactivate user")
		return err
	}

	s.record(p, domain.ActionDelete, "user", id)
	return nil
}
