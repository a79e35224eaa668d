package domain

import (
	"errors"
	"time"
)

// ErrInvalidToken is the single failure outcome of token verification.
// Malformed, badly signed and expired tokens are deliberately
// indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the payload carried inside a session token. Tokens are
// never persisted; the signature over the encoded payload makes them
// self-verifying.
type TokenClaims struct {
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
	Nonce    string `json:"nonce"`
}

// Expired reports whether the claims have passed their expiry at instant now.
func (c TokenClaims) Expired(now time.Time) bool {
	return c.Exp < now.Unix()
}
