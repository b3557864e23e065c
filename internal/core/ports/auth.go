package ports

import (
	"context"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// UserRepository persists backoffice accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id string, active bool) error
}

// ClientUserRepository persists portal logins.
type ClientUserRepository interface {
	Create(ctx context.Context, user *domain.ClientUser) (*domain.ClientUser, error)
	FindByUsername(ctx context.Context, username string) (*domain.ClientUser, error)
}

// SessionStore holds staff sessions keyed by the cookie value. Expiry is the
// store's concern (TTL); Get must not extend a session's lifetime.
type SessionStore interface {
	Create(ctx context.Context, session domain.Session) (string, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// StaffLoginResult is returned on a successful staff login.
type StaffLoginResult struct {
	SessionID string
	User      *domain.User
}

// ClientLoginResult is returned on a successful portal login.
type ClientLoginResult struct {
	Token    string
	ClientID string
}

// AuthService implements login and logout for both audiences.
type AuthService interface {
	LoginStaff(ctx context.Context, username, password string) (*StaffLoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	LoginClient(ctx context.Context, username, password string) (*ClientLoginResult, error)
}
