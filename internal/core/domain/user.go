package domain

import (
	"errors"
	"time"
)

// Staff and portal roles. A principal carries exactly one of these.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleDesigner = "designer"
	RoleClient   = "client"
)

// Designer subtypes.
const (
	DesignerExternal = "external"
	DesignerInternal = "internal"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserInactive       = errors.New("user is deactivated")
)

// StaffRole reports whether role names one of the backoffice roles.
func StaffRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleDesigner
}

// User is a backoffice account (admin, manager or designer).
// Accounts are never hard-deleted; deactivation flips IsActive.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	DesignerType string    `json:"designer_type,omitempty"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientUser is a portal login bound to a Client record.
type ClientUser struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
