package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "cms-system/pkg/errors"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.True(t, f.WithPagination)
	assert.Empty(t, f.Search)
	assert.Empty(t, f.Sort)
	assert.Empty(t, f.Filter)
}

func TestParseFilterFromQuery_LimitCap(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"limit": {"9999"}})
	assert.Equal(t, MaxLimit, f.Limit)

	f = ParseFilterFromQuery(url.Values{"limit": {"10"}})
	assert.Equal(t, 10, f.Limit)

	// Мусор и неположительные значения игнорируются
	f = ParseFilterFromQuery(url.Values{"limit": {"abc"}})
	assert.Equal(t, DefaultLimit, f.Limit)

	f = ParseFilterFromQuery(url.Values{"limit": {"-5"}})
	assert.Equal(t, DefaultLimit, f.Limit)
}

func TestParseFilterFromQuery_PageToOffset(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"10"}})

	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Offset, "offset вычисляется из page, если не задан явно")
}

func TestParseFilterFromQuery_ExplicitOffsetWins(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"10"}, "offset": {"7"}})
	assert.Equal(t, 7, f.Offset)
}

func TestParseFilterFromQuery_SortAndFilter(t *testing.T) {
	values := url.Values{
		"sort[created_at]":    {"desc"},
		"sort[title]":         {"ASC"},
		"sort[bad]":           {"sideways"},
		"filter[status]":      {"published"},
		"filter[author_id]":   {"1", "2"},
		"search":              {"контакты"},
		"filter[empty_value]": {""},
	}

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "контакты", f.Search)
	assert.Equal(t, "desc", f.Sort["created_at"])
	assert.Equal(t, "asc", f.Sort["title"])
	assert.NotContains(t, f.Sort, "bad")
	assert.Equal(t, "published", f.Filter["status"])
	assert.NotContains(t, f.Filter, "empty_value")
}

func TestParseFilterFromQuery_WithPaginationFlag(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"withPagination": {"false"}})
	assert.False(t, f.WithPagination)

	f = ParseFilterFromQuery(url.Values{"withPagination": {"true"}})
	assert.True(t, f.WithPagination)
}

func newJSONContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessResponse_Plain(t *testing.T) {
	c, rec := newJSONContext(t, "/api/page")

	err := SuccessResponse(c, map[string]string{"slug": "home"}, "Успешно", http.StatusOK)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["status"])
	assert.Equal(t, "Успешно", body["message"])
}

func TestSuccessResponse_WithPagination(t *testing.T) {
	c, rec := newJSONContext(t, "/api/page?withPagination=true&limit=10&page=2")

	list := []string{"a", "b"}
	err := SuccessResponse(c, list, "Успешно", http.StatusOK, 25)
	require.NoError(t, err)

	body := decodeBody(t, rec)
	inner, ok := body["body"].(map[string]interface{})
	require.True(t, ok, "при пагинации body содержит list и pagination")

	pagination, ok := inner["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(25), pagination["total_count"])
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])
	assert.Equal(t, float64(3), pagination["total_pages"], "25 записей по 10 - это 3 страницы")
}

func TestErrorResponse_HttpError(t *testing.T) {
	c, rec := newJSONContext(t, "/api/page")

	httpErr := apperrors.NewHttpError(http.StatusConflict, "Страница с таким slug уже существует", nil,
		map[string]string{"slug": "home"})
	require.NoError(t, ErrorResponse(c, httpErr, zap.NewNop()))

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "Страница с таким slug уже существует", body["message"])
	assert.NotNil(t, body["body"])
}

func TestErrorResponse_Sentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			c, rec := newJSONContext(t, "/api/page")
			require.NoError(t, ErrorResponse(c, tc.err, zap.NewNop()))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestErrorResponse_WrappedSentinel(t *testing.T) {
	c, rec := newJSONContext(t, "/api/page")

	wrapped := fmt.Errorf("репозиторий: %w", apperrors.ErrNotFound)
	require.NoError(t, ErrorResponse(c, wrapped, zap.NewNop()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorResponse_UnknownErrorIs500(t *testing.T) {
	c, rec := newJSONContext(t, "/api/page")

	require.NoError(t, ErrorResponse(c, fmt.Errorf("что-то пошло не так"), zap.NewNop()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Внутренняя ошибка сервера", body["message"])
}

func TestRequireNotNil(t *testing.T) {
	assert.NoError(t, RequireNotNil("next", func() {}))

	err := RequireNotNil("next", nil)
	require.Error(t, err)

	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.Equal(t, "next", httpErr.Context["missing_argument"])
}

// Nil-функция, упакованная в interface{}, проходит RequireNotNil, поэтому
// обработчики проверяются отдельной функцией.
func TestRequireHandler(t *testing.T) {
	var next echo.HandlerFunc

	assert.NoError(t, RequireNotNil("next", next), "упакованный nil не ловится общей проверкой")

	err := RequireHandler("next", next)
	require.Error(t, err)

	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.Equal(t, "next", httpErr.Context["missing_argument"])

	assert.NoError(t, RequireHandler("next", func(c echo.Context) error { return nil }))
}
