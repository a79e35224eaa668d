package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/webdesk/identity/internal/core/domain"
	"github.com/webdesk/identity/internal/core/ports"
)

// AuthService implements tenant registration and login on top of a
// UserRepository and a TokenService.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	homes    ports.TenantHomes
	throttle ports.LoginThrottle
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, homes ports.TenantHomes, throttle ports.LoginThrottle) *AuthService {
	if throttle == nil {
		throttle = noThrottle{}
	}
	return &AuthService{repo: repo, tokens: tokens, homes: homes, throttle: throttle}
}

// Register creates a credential record and returns a session token. The
// tenant home is provisioned before the record is written: a provisioning
// failure aborts registration without leaving a homeless record behind.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	if !domain.ValidUsername(username) {
		return "", domain.ErrInvalidUsername
	}
	if password == "" {
		return "", domain.ErrInvalidPassword
	}

	if _, err := s.repo.Find(ctx, username); err == nil {
		return "", domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return "", err
	}

	if _, err := s.homes.Ensure(username); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Created:      now,
		LastLogin:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.Issue(username)
}

// Login verifies the password against the stored hash, advances last_login
// and returns a fresh session token. An unknown username and a wrong
// password fail with distinct errors.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if blocked, err := s.throttle.Blocked(ctx, username); err == nil && blocked {
		return "", domain.ErrLoginThrottled
	}

	user, err := s.repo.Find(ctx, username)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		_ = s.throttle.RecordFailure(ctx, username)
		return "", domain.ErrInvalidPassword
	}
	_ = s.throttle.Reset(ctx, username)

	if err := s.repo.UpdateLastLogin(ctx, username, time.Now().UTC()); err != nil {
		return "", err
	}

	return s.tokens.Issue(username)
}

// noThrottle disables login throttling.
type noThrottle struct{}

func (noThrottle) Blocked(context.Context, string) (bool, error) { return false, nil }
func (noThrottle) RecordFailure(context.Context, string) error   { return nil }
func (noThrottle) Reset(context.Context, string) error           { return nil }
