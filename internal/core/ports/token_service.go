package ports

// TokenService issues and verifies stateless signed session tokens.
// Wire format (stable, consumed by interoperating clients):
// <base64url payload> "." <hex signature>.
type TokenService interface {
	Issue(username string) (string, error)
	// Verify returns the username carried by a valid token, or
	// domain.ErrInvalidToken for any malformed, forged or expired token.
	Verify(token string) (string, error)
}
