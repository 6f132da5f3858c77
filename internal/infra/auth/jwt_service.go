// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"backoffice/config"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     []byte            // Process-wide signing key.
	method     jwt.SigningMethod // Configured HMAC signing method.
	accessTTL  time.Duration     // Time-to-live for access tokens.
	refreshTTL time.Duration     // Time-to-live for refresh tokens.
}

// tokenClaims is the wire shape of a session token.
type tokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	method := jwt.GetSigningMethod(cfg.JWT.Algorithm)
	if method == nil {
		return nil, errors.Errorf("unknown signing algorithm: %s", cfg.JWT.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("signing algorithm %s is not in the HMAC family", cfg.JWT.Algorithm)
	}

	return &jwtService{
		secret:     []byte(cfg.JWT.Secret),
		method:     method,
		accessTTL:  time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour,
	}, nil
}

// Issue produces a signed token embedding subject, kind and absolute expiry.
func (s *jwtService) Issue(subjectID string, kind service.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Type: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// GenerateTokenPair creates a new access token and refresh token for a given subject.
func (s *jwtService) GenerateTokenPair(subjectID string) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.Issue(subjectID, service.TokenKindAccess, s.accessTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.Issue(subjectID, service.TokenKindRefresh, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Decode verifies signature and expiry and returns the claims. Every failure
// mode collapses into ErrInvalidToken so callers cannot probe which check
// failed.
func (s *jwtService) Decode(tokenString string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domainerrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domainerrors.ErrInvalidToken
	}

	kind := service.TokenKind(claims.Type)
	if kind != service.TokenKindAccess && kind != service.TokenKindRefresh {
		return nil, domainerrors.ErrInvalidToken
	}

	return &service.Claims{
		SubjectID: claims.Subject,
		Kind:      kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// AccessTokenTTL returns the configured duration for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
