package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")

// Action names an operation a principal attempts on a resource.
type Action string

const (
	ActionRead             Action = "read"
	ActionCreate           Action = "create"
	ActionUpdate           Action = "update"
	ActionDelete           Action = "delete"
	ActionToggleVisibility Action = "toggle_visibility"
)

// Resource is anything the access policy can rule on. Entities expose their
// ownership fields through it so the policy stays in one place instead of
// being re-derived in every handler.
type Resource interface {
	// OwnerID is the id of the manager who created the resource.
	OwnerID() string
	// OwnerClientID is the id of the client the resource belongs to.
	OwnerClientID() string
	// VisibleToClient reports whether the resource is exposed on the portal.
	VisibleToClient() bool
	// AssignedDesignerID is the designer attached to the resource, or "".
	AssignedDesignerID() string
}

// Authorize decides whether principal may perform action on res.
// Rules are evaluated in order, first match wins:
//
//  1. admin: always allowed.
//  2. manager: allowed on own resources (OwnerID == principal id), denied otherwise.
//  3. client: read-only, own client id and portal-visible resources only.
//  4. designer: allowed only on resources assigned to them.
//  5. anything else: denied.
//
// Ownership fields can change between requests, so the decision is recomputed
// on every call and must never be cached.
func Authorize(p Principal, action Action, res Resource) error {
	switch p.Role {
	case RoleAdmin:
		return nil
	case RoleManager:
		if res.OwnerID() == p.ID {
			return nil
		}
		return ErrForbidden
	case RoleClient:
		if action == ActionRead && p.ClientID != "" && res.OwnerClientID() == p.ClientID && res.VisibleToClient() {
			return nil
		}
		return ErrForbidden
	case RoleDesigner:
		if res.AssignedDesignerID() != "" && res.AssignedDesignerID() == p.ID {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}
