package service

// TokenRevoker tracks tokens invalidated before their natural expiry. The
// access guard consults it on every authenticated request, so implementations
// must be safe for concurrent use.
type TokenRevoker interface {
	// Revoke marks a token string unusable. Idempotent; the token is not
	// validated first, any string can be revoked.
	Revoke(token string)

	// IsRevoked reports whether the token has been revoked.
	IsRevoked(token string) bool
}
