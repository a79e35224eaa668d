package ports

import (
	"context"
	"time"

	"github.com/webdesk/identity/internal/core/domain"
)

// UserRepository is the durable key-value store of credential records, one
// independently addressable record per username. Create must refuse an
// existing username with domain.ErrUserExists; Find must report an unknown
// username with domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Find(ctx context.Context, username string) (*domain.User, error)
	// UpdateLastLogin rewrites the record with the new last-login instant.
	// Whole-record last-writer-wins; the field is advisory.
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
}
