package ports

import (
	"context"

	"github.com/webdesk/identity/internal/core/domain"
)

// AuditRepository appends command-execution records to a per-tenant trail.
type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder accepts entries for asynchronous persistence. Implementations
// must preserve per-username ordering.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
