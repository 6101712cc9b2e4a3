package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cms-system/internal/dto"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/service"
	"cms-system/pkg/utils"
)

type stubIdentityLoader struct {
	claims *dto.UserClaims
	err    error
}

func (s *stubIdentityLoader) LoadUserClaims(ctx context.Context, userID uint64) (*dto.UserClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func TestAuth_BearerFlow(t *testing.T) {
	e := echo.New()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour, zap.NewNop())
	identity := &stubIdentityLoader{claims: editorClaims()}
	mw := NewAuthMiddleware(jwtSvc, identity, nil, zap.NewNop())

	accessToken, refreshToken, err := jwtSvc.GenerateTokens(42)
	require.NoError(t, err)

	handler := mw.Auth(func(c echo.Context) error {
		user, err := utils.UserClaimsFromContext(c)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), user.UserID)
		assert.Equal(t, "editor1", user.Username)
		return c.String(http.StatusOK, "ok")
	})

	t.Run("валидный access токен", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("без заголовка", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("неверный формат заголовка", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh токен не принимается как access", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+refreshToken)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuth_IdentityLoadFailure(t *testing.T) {
	e := echo.New()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour, zap.NewNop())
	identity := &stubIdentityLoader{err: apperrors.ErrUnauthorized}
	mw := NewAuthMiddleware(jwtSvc, identity, nil, zap.NewNop())

	accessToken, _, err := jwtSvc.GenerateTokens(42)
	require.NoError(t, err)

	calls := 0
	handler := mw.Auth(spyHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()

	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}
