package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cms-system/internal/authz"
	"cms-system/internal/dto"
	"cms-system/pkg/contextkeys"
	apperrors "cms-system/pkg/errors"
)

// newTestContext собирает echo.Context с уже загруженной идентичностью,
// как это делает Auth после валидации токена.
func newTestContext(e *echo.Echo, claims *dto.UserClaims) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/page", nil)
	if claims != nil {
		ctx := context.WithValue(req.Context(), contextkeys.UserClaimsKey, claims)
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestMiddleware() *AuthMiddleware {
	return NewAuthMiddleware(nil, nil, nil, zap.NewNop())
}

func spyHandler(calls *int) echo.HandlerFunc {
	return func(c echo.Context) error {
		*calls++
		return c.String(http.StatusOK, "ok")
	}
}

func editorClaims() *dto.UserClaims {
	return &dto.UserClaims{
		UserID:      42,
		Username:    "editor1",
		Roles:       []string{"editor"},
		Permissions: []string{"pages:view", "pages:create"},
	}
}

func TestAuthorize_PassesWithMatchingRole(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	calls := 0
	h := mw.Authorize(authz.Claims{Roles: []string{"editor"}})(spyHandler(&calls))

	c, rec := newTestContext(e, editorClaims())
	err := h(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls, "обработчик должен вызываться ровно один раз")
}

func TestAuthorize_UnauthenticatedReturns401(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	calls := 0
	h := mw.Authorize(authz.Claims{Roles: []string{"editor"}})(spyHandler(&calls))

	c, rec := newTestContext(e, nil)
	err := h(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}

// Аутентификация проверяется раньше ролей: без идентичности ответ всегда 401,
// даже если роль заведомо не подошла бы.
func TestAuthorize_AuthCheckedBeforeRoles(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	calls := 0
	h := mw.Authorize(authz.Claims{Roles: []string{"admin"}})(spyHandler(&calls))

	c, rec := newTestContext(e, nil)
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthorize_WrongRoleReturns403(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	calls := 0
	h := mw.Authorize(authz.Claims{Roles: []string{"admin"}})(spyHandler(&calls))

	c, rec := newTestContext(e, editorClaims())
	err := h(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, calls)
}

// Маршрут с привилегиями в Claims закрыт безусловно: даже пользователь,
// обладающий всеми перечисленными привилегиями, получает 403.
func TestAuthorize_PermissionsAlwaysDeny(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	calls := 0
	h := mw.Authorize(authz.Claims{Permissions: []string{"pages:view"}})(spyHandler(&calls))

	user := editorClaims() // имеет pages:view
	c, rec := newTestContext(e, user)
	err := h(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthorize_UserAllowList(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	t.Run("пользователь в списке", func(t *testing.T) {
		calls := 0
		h := mw.Authorize(authz.Claims{Users: []string{"editor1", "admin"}})(spyHandler(&calls))

		c, rec := newTestContext(e, editorClaims())
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("пользователь вне списка", func(t *testing.T) {
		calls := 0
		h := mw.Authorize(authz.Claims{Users: []string{"admin"}})(spyHandler(&calls))

		c, rec := newTestContext(e, editorClaims())
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, calls)
	})
}

// Роли проверяются раньше списка пользователей: при неподходящей роли 403
// приходит из проверки ролей, даже если пользователь есть в списке.
func TestAuthorize_RolesCheckedBeforeUsers(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	calls := 0
	h := mw.Authorize(authz.Claims{
		Roles: []string{"admin"},
		Users: []string{"editor1"},
	})(spyHandler(&calls))

	c, rec := newTestContext(e, editorClaims())
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthorize_EmptyClaimsOnlyRequireAuth(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	calls := 0
	h := mw.Authorize(authz.Claims{})(spyHandler(&calls))

	c, rec := newTestContext(e, editorClaims())
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
}

// Отсутствующий next - ошибка сборки пайплайна, она возвращается напрямую
// как HttpError 500, а не рендерится как обычный ответ авторизации.
func TestAuthorize_NilNextFailsFast(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	h := mw.Authorize(authz.Claims{Roles: []string{"editor"}})(nil)

	c, _ := newTestContext(e, editorClaims())
	err := h(c)

	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestAuthorizeAny_NilNextFailsFast(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	h := mw.AuthorizeAny("pages:view")(nil)

	c, _ := newTestContext(e, editorClaims())
	err := h(c)

	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

// trackingAuthenticator фиксирует, что к нему вообще обращались.
type trackingAuthenticator struct {
	called bool
}

func (a *trackingAuthenticator) IsAuthenticated(c echo.Context) bool {
	a.called = true
	return true
}

func (a *trackingAuthenticator) IsInRoles(userRoles, requiredRoles []string) bool {
	a.called = true
	return true
}

// Запрос без http.Request - тоже ошибка сборки: 500 возвращается напрямую,
// до любого обращения к аутентификации.
func TestAuthorize_NilRequestFailsFast(t *testing.T) {
	e := echo.New()
	auth := &trackingAuthenticator{}
	mw := NewAuthMiddleware(nil, nil, auth, zap.NewNop())

	calls := 0
	h := mw.Authorize(authz.Claims{Roles: []string{"editor"}})(spyHandler(&calls))

	c := e.NewContext(nil, httptest.NewRecorder())
	err := h(c)

	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.Equal(t, "request", httpErr.Context["missing_argument"])
	assert.False(t, auth.called, "аутентификация не должна проверяться без запроса")
	assert.Zero(t, calls)
}

func TestAuthorizeAny(t *testing.T) {
	e := echo.New()
	mw := newTestMiddleware()

	t.Run("есть требуемая привилегия", func(t *testing.T) {
		calls := 0
		h := mw.AuthorizeAny("pages:view")(spyHandler(&calls))

		c, rec := newTestContext(e, editorClaims())
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("достаточно одной из перечисленных", func(t *testing.T) {
		calls := 0
		h := mw.AuthorizeAny("users:manage", "pages:create")(spyHandler(&calls))

		c, rec := newTestContext(e, editorClaims())
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("нет ни одной привилегии", func(t *testing.T) {
		calls := 0
		h := mw.AuthorizeAny("users:manage")(spyHandler(&calls))

		c, rec := newTestContext(e, editorClaims())
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Zero(t, calls)
	})

	t.Run("суперпользователь проходит всегда", func(t *testing.T) {
		calls := 0
		h := mw.AuthorizeAny("users:manage")(spyHandler(&calls))

		su := &dto.UserClaims{UserID: 1, Username: "root", Permissions: []string{authz.Superuser}}
		c, rec := newTestContext(e, su)
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("без аутентификации 401", func(t *testing.T) {
		calls := 0
		h := mw.AuthorizeAny("pages:view")(spyHandler(&calls))

		c, rec := newTestContext(e, nil)
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, calls)
	})
}

func TestContextAuthenticator_IsInRoles(t *testing.T) {
	a := NewContextAuthenticator()

	assert.True(t, a.IsInRoles([]string{"editor"}, []string{"editor", "admin"}))
	assert.False(t, a.IsInRoles([]string{"viewer"}, []string{"editor", "admin"}))
	assert.False(t, a.IsInRoles(nil, []string{"editor"}))
}
