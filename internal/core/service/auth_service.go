package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
	"github.com/smetaworks/estimates-api/pkg/token"
)

// AuthService implements staff and portal login.
type AuthService struct {
	users       ports.UserRepository
	clientUsers ports.ClientUserRepository
	sessions    ports.SessionStore
	jwtSecret   string
	tokenTTL    time.Duration
	log         zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	clientUsers ports.ClientUserRepository,
	sessions ports.SessionStore,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		clientUsers: clientUsers,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

// LoginStaff verifies credentials and opens a server-side session.
// Deactivated accounts and unknown usernames both resolve to
// ErrInvalidCredentials so the response does not reveal which it was.
func (s *AuthService) LoginStaff(ctx context.Context, username, password string) (*ports.StaffLoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, domain.Session{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		DesignerType: user.DesignerType,
		Name:         user.Name,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to create session")
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", user.Role).Msg("staff login")
	return &ports.StaffLoginResult{SessionID: sessionID, User: user}, nil
}

// Logout removes the session. Deleting an already-absent session is not an
// error: the observable outcome (cookie no longer valid) is the same.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// LoginClient verifies portal credentials and issues a signed client token.
func (s *AuthService) LoginClient(ctx context.Context, username, password string) (*ports.ClientLoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cu, err := s.clientUsers.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !cu.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(cu.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Sign(s.jwtSecret, cu.ClientID, cu.ID, s.tokenTTL)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to sign client token")
		return nil, err
	}

	s.log.Info().Str("username", username).Str("client_id", cu.ClientID).Msg("client login")
	return &ports.ClientLoginResult{Token: signed, ClientID: cu.ClientID}, nil
}
