package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "cms-system/pkg/errors"
)

// RequireNotNil - fail-fast проверка обязательного аргумента. Нарушение означает
// ошибку сборки пайплайна, а не пользовательскую ситуацию, поэтому возвращается
// 500, а не 401/403.
func RequireNotNil(name string, value interface{}) error {
	if value == nil {
		return apperrors.NewHttpError(
			http.StatusInternalServerError,
			"Внутренняя ошибка сервера",
			apperrors.ErrInternalServer,
		).WithContext("missing_argument", name)
	}
	return nil
}

// RequireHandler - то же для обработчиков. Nil-функция, упакованная в
// interface{}, не равна nil, поэтому echo.HandlerFunc сверяется с nil напрямую.
func RequireHandler(name string, h echo.HandlerFunc) error {
	if h == nil {
		return RequireNotNil(name, nil)
	}
	return nil
}
