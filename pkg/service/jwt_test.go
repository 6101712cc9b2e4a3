package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "cms-system/pkg/errors"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) JWTService {
	return NewJWTService("test-secret", accessTTL, refreshTTL, zap.NewNop())
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	access, refresh, err := svc.GenerateTokens(7)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), accessClaims.UserID)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), refreshClaims.UserID)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)
	other := NewJWTService("another-secret", time.Hour, 24*time.Hour, zap.NewNop())

	access, _, err := other.GenerateTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	_, err := svc.ValidateToken("definitely.not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute, 24*time.Hour)

	access, _, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	// Библиотека отсекает истёкший токен ещё на парсинге
	assert.Error(t, err)
}

func TestTokenTTLs(t *testing.T) {
	svc := newTestJWTService(time.Hour, 48*time.Hour)

	assert.Equal(t, time.Hour, svc.GetAccessTokenTTL())
	assert.Equal(t, 48*time.Hour, svc.GetRefreshTokenTTL())
}
