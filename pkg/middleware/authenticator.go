package middleware

import (
	"cms-system/pkg/utils"

	"github.com/labstack/echo/v4"
)

// contextAuthenticator - реализация Authenticator по умолчанию: идентичность
// считается установленной, если Auth положил claims в контекст запроса.
type contextAuthenticator struct{}

func NewContextAuthenticator() Authenticator {
	return contextAuthenticator{}
}

func (contextAuthenticator) IsAuthenticated(c echo.Context) bool {
	if c == nil || c.Request() == nil {
		return false
	}
	claims, err := utils.UserClaimsFromContext(c)
	return err == nil && claims.UserID != 0
}

// IsInRoles - достаточно пересечения хотя бы по одной роли.
func (contextAuthenticator) IsInRoles(userRoles []string, requiredRoles []string) bool {
	for _, required := range requiredRoles {
		for _, have := range userRoles {
			if have == required {
				return true
			}
		}
	}
	return false
}
