package ports

import (
	"context"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// AuditSink accepts audit events for asynchronous persistence. Enqueue must
// not block the request path.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// NopAuditSink discards events; used in tests.
type NopAuditSink struct{}

func (NopAuditSink) Enqueue(domain.AuditEvent) {}
