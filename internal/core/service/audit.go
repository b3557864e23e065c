package service

import (
	"time"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// auditor is embedded by the resource services to feed the audit trail.
type auditor struct {
	sink ports.AuditSink
}

func (a auditor) record(p domain.Principal, action domain.Action, entity, id string) {
	a.emit(p, action, entity, id, domain.AuditAllowed)
}

// deny emits a denial event and returns ErrForbidden so call sites stay
// one-liners.
func (a auditor) deny(p domain.Principal, action domain.Action, entity, id string) error {
	a.emit(p, action, entity, id, domain.AuditDenied)
	return domain.ErrForbidden
}

func (a auditor) emit(p domain.Principal, action domain.Action, entity, id, outcome string) {
	a.sink.Enqueue(domain.AuditEvent{
		ActorID:    p.ID,
		ActorRole:  p.Role,
		Action:     string(action),
		Entity:     entity,
		EntityID:   id,
		Outcome:    outcome,
		OccurredAt: time.Now().UTC(),
	})
}
