package domain

import "time"

// Audit outcomes.
const (
	AuditAllowed = "allowed"
	AuditDenied  = "denied"
)

// AuditEvent records a mutation or a policy denial for the audit trail.
// Events are written asynchronously and must never block the request path.
type AuditEvent struct {
	ActorID    string    `json:"actor_id" bson:"actor_id"`
	ActorRole  string    `json:"actor_role" bson:"actor_role"`
	Action     string    `json:"action" bson:"action"`
	Entity     string    `json:"entity" bson:"entity"`
	EntityID   string    `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Outcome    string    `json:"outcome" bson:"outcome"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}
