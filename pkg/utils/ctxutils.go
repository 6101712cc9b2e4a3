package utils

import (
	"cms-system/internal/dto"
	"cms-system/pkg/contextkeys"
	apperrors "cms-system/pkg/errors"

	"github.com/labstack/echo/v4"
)

// UserClaimsFromContext достаёт идентичность, положенную AuthMiddleware.Auth.
func UserClaimsFromContext(c echo.Context) (*dto.UserClaims, error) {
	claims, ok := c.Request().Context().Value(contextkeys.UserClaimsKey).(*dto.UserClaims)
	if !ok || claims == nil {
		return nil, apperrors.ErrUserClaimsNotFoundInContext
	}
	return claims, nil
}

func UserIDFromContext(c echo.Context) (uint64, error) {
	claims, err := UserClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
