package routes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-system/internal/authz"
	"cms-system/internal/repositories"
	"cms-system/internal/services"
	"cms-system/pkg/config"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/middleware"
	"cms-system/pkg/utils"
)

// runAdminRouter - служебные операции. Здесь маршруты защищаются полной
// конфигурацией Authorize: требование роли и, для сброса кеша, ещё и
// персональный список пользователей.
func runAdminRouter(
	secureGroup *echo.Group,
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	authPermissionService services.AuthPermissionServiceInterface,
	roleRepo repositories.RoleRepositoryInterface,
	logger *zap.Logger,
) {
	adminGroup := secureGroup.Group("/admin")

	adminGroup.GET("/health", func(c echo.Context) error {
		return utils.SuccessResponse(c, map[string]string{"status": "ok"}, "Сервис работает", http.StatusOK)
	}, authMW.Authorize(authz.Claims{Roles: []string{authz.RoleAdmin}}))

	adminGroup.POST("/cache/roles/:id/invalidate", func(c echo.Context) error {
		roleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID роли", err), logger)
		}
		if _, err := roleRepo.FindRoleByID(c.Request().Context(), roleID); err != nil {
			return utils.ErrorResponse(c, err, logger)
		}
		if err := authPermissionService.InvalidateRolePermissionsCache(c.Request().Context(), roleID); err != nil {
			return utils.ErrorResponse(c, err, logger)
		}
		return utils.SuccessResponse(c, struct{}{}, "Кеш привилегий роли сброшен", http.StatusOK)
	}, authMW.Authorize(authz.Claims{
		Roles: []string{authz.RoleAdmin},
		Users: []string{cfg.Admin.Username},
	}))
}
