package service

import (
	"strings"
	"testing"
	"time"

	"github.com/webdesk/identity/internal/core/domain"
)

func TestTokenService_IssueVerify_Roundtrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if !strings.Contains(token, ".") {
		t.Fatalf("token missing delimiter: %q", token)
	}

	username, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected alice, got %q", username)
	}
}

func TestTokenService_Nonce(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	a, _ := svc.Issue("alice")
	b, _ := svc.Issue("alice")
	if a == b {
		t.Fatalf("two tokens issued in the same instant must differ")
	}
}

func TestTokenService_Expiry(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	now := time.Now()
	svc.now = func() time.Time { return now }
	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Still valid just before expiry.
	svc.now = func() time.Time { return now.Add(time.Hour - time.Second) }
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should be valid before expiry: %v", err)
	}

	// Invalid at and after expiry.
	svc.now = func() time.Time { return now.Add(time.Hour + time.Second) }
	if _, err := svc.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestTokenService_Tampering(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flipping any single character in payload or signature must fail.
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		flipped := token[:i] + string(token[i]^1) + token[i+1:]
		if _, err := svc.Verify(flipped); err != domain.ErrInvalidToken {
			t.Fatalf("tampered token at offset %d accepted", i)
		}
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", ".", "payload.", ".signature", "no-delimiter", "a.b.c"} {
		if _, err := svc.Verify(token); err != domain.ErrInvalidToken {
			t.Fatalf("malformed token %q accepted: %v", token, err)
		}
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret", time.Hour)
	verifier := NewTokenService("other", time.Hour)

	token, _ := issuer.Issue("alice")
	if _, err := verifier.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("token signed with different secret accepted: %v", err)
	}
}
