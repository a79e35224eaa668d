package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/webdesk/identity/internal/core/domain"
)

// DefaultTokenTTL is how long an issued session token stays valid. There is
// no revocation: a token is good until its recorded expiry.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and verifies stateless HMAC-signed session tokens.
// Token format: base64url(JSON{username,exp,nonce}) + "." + hex(HMAC-SHA256).
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue builds a signed token for username. The nonce keeps two tokens
// issued in the same instant from being identical.
func (s *TokenService) Issue(username string) (string, error) {
	claims := domain.TokenClaims{
		Username: username,
		Exp:      s.now().Add(s.ttl).Unix(),
		Nonce:    uuid.NewString(),
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + s.sign(payload), nil
}

// Verify returns the username carried by token. Malformed tokens, signature
// mismatches and expired claims all collapse into domain.ErrInvalidToken so
// the caller learns nothing about which check failed.
func (s *TokenService) Verify(token string) (string, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return "", domain.ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return "", domain.ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	var claims domain.TokenClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return "", domain.ErrInvalidToken
	}
	if claims.Username == "" || claims.Expired(s.now()) {
		return "", domain.ErrInvalidToken
	}
	return claims.Username, nil
}

func (s *TokenService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
