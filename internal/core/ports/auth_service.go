package ports

import "context"

// AuthService implements registration and login for tenant identities.
// Both return a freshly issued session token on success.
type AuthService interface {
	Register(ctx context.Context, username, password string) (token string, err error)
	Login(ctx context.Context, username, password string) (token string, err error)
}

// TenantHomes provisions and locates per-tenant home directories.
type TenantHomes interface {
	// Ensure creates the tenant home if missing and returns its path.
	Ensure(username string) (string, error)
	// Path returns the tenant home path without touching the filesystem.
	Path(username string) string
}

// LoginThrottle limits failed password attempts per username. A nil-safe
// no-op implementation keeps the throttle optional.
type LoginThrottle interface {
	// Blocked reports whether the username has exhausted its failure budget.
	Blocked(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
