package ports

import (
	"context"

	"github.com/webdesk/identity/internal/core/domain"
)

// SandboxService executes shell commands confined to a tenant home.
// Policy filtering happens before any subprocess is spawned.
type SandboxService interface {
	Execute(ctx context.Context, username, rawCommand string) (*domain.ExecResult, error)
}

// FilesService resolves virtual paths against a tenant home and lists
// directories inside it.
type FilesService interface {
	List(ctx context.Context, username, virtualPath string) (*domain.Listing, error)
}
