// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"time"
)

// TokenKind distinguishes the two session token flavors.
type TokenKind string

const (
	// TokenKindAccess is short-lived and authorizes API calls.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is long-lived and exchanges for a new token pair.
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the decoded content of a session token.
type Claims struct {
	SubjectID string
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenService is the stateless token codec: it issues and decodes signed,
// expiring session tokens. Decode collapses every failure mode (bad
// signature, corruption, expiry) into a single invalid-token error so
// callers cannot distinguish which check failed.
type TokenService interface {
	// Issue produces a signed token for subjectID of the given kind,
	// expiring ttl from now.
	Issue(subjectID string, kind TokenKind, ttl time.Duration) (string, error)

	// GenerateTokenPair issues an access and a refresh token with the
	// configured TTLs.
	GenerateTokenPair(subjectID string) (accessToken string, refreshToken string, err error)

	// Decode verifies signature and expiry and returns the claims.
	Decode(token string) (*Claims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration
}
