package domain

import (
	"errors"
	"time"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrWrongTokenType  = errors.New("wrong token type")
	ErrSessionNotFound = errors.New("session not found")
)

// Principal is the identity resolved from a validated session or token.
// It lives only for the duration of a single request and is rebuilt from the
// stored token on every call; it is never persisted.
type Principal struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	DesignerType string `json:"designer_type,omitempty"`
	Name         string `json:"name"`
	// ClientID and ClientUserID are set only for role "client".
	ClientID     string `json:"client_id,omitempty"`
	ClientUserID string `json:"client_user_id,omitempty"`
}

// Session is the server-side record referenced by the staff session cookie.
// Expiry is enforced by the store's TTL.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	DesignerType string    `json:"designer_type,omitempty"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal builds the per-request identity from the session fields.
func (s Session) Principal() Principal {
	return Principal{
		ID:           s.UserID,
		Username:     s.Username,
		Role:         s.Role,
		DesignerType: s.DesignerType,
		Name:         s.Name,
	}
}
