package domain

import (
	"errors"
	"regexp"
	"time"
)

// Username rule: a lowercase letter followed by lowercase letters, digits or
// underscores, 3-32 characters total (the leading letter counts).
var usernameRe = regexp.MustCompile(`^[a-z][a-z0-9_]{2,31}$`)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrInvalidUsername = errors.New("username must start with a lowercase letter and contain only lowercase letters, digits and underscores (3-32 chars)")
	ErrInvalidPassword = errors.New("invalid password")
	ErrLoginThrottled  = errors.New("too many failed login attempts")
)

// User is the durable per-tenant credential record. Username is immutable
// once registered; LastLogin is the only field mutated after creation.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Created      time.Time `json:"created"`
	LastLogin    time.Time `json:"last_login"`
}

// ValidUsername reports whether u satisfies the canonical username rule.
func ValidUsername(u string) bool {
	return usernameRe.MatchString(u)
}
