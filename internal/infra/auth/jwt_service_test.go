package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/config"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/service"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			Secret:           "test_secret_key_very_long_for_testing",
			Algorithm:        "HS256",
			AccessTTLMinutes: 30,
			RefreshTTLDays:   7,
		},
	}
}

func TestJWTService_GenerateAndDecodeTokenPair(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	accessToken, refreshToken, err := jwtService.GenerateTokenPair("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	accessClaims, err := jwtService.Decode(accessToken)
	assert.NoError(t, err)
	require.NotNil(t, accessClaims)
	assert.Equal(t, "user-123", accessClaims.SubjectID)
	assert.Equal(t, service.TokenKindAccess, accessClaims.Kind)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), accessClaims.ExpiresAt, time.Minute)

	refreshClaims, err := jwtService.Decode(refreshToken)
	assert.NoError(t, err)
	require.NotNil(t, refreshClaims)
	assert.Equal(t, "user-123", refreshClaims.SubjectID)
	assert.Equal(t, service.TokenKindRefresh, refreshClaims.Kind)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	claims, err := jwtService.Decode("clearly-not-a-jwt-token-format")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_WrongSignatureCollapsesToInvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.JWT.Secret = "a_completely_different_secret_key"
	otherService, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := otherService.Issue("user-123", service.TokenKindAccess, time.Hour)
	require.NoError(t, err)

	claims, err := jwtService.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_ExpiredTokenCollapsesToInvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := jwtService.Issue("user-123", service.TokenKindAccess, -time.Minute)
	require.NoError(t, err)

	claims, err := jwtService.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_UnknownKindRejected(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := jwtService.Issue("user-123", service.TokenKind("session"), time.Hour)
	require.NoError(t, err)

	claims, err := jwtService.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.Secret = ""

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_NonHMACAlgorithmRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.Algorithm = "RS256"

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}

func TestJWTService_AccessTokenTTL(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, jwtService.AccessTokenTTL())
}
