package routes

import (
	"github.com/labstack/echo/v4"

	"cms-system/internal/authz"
	"cms-system/internal/controllers"
	"cms-system/pkg/middleware"
)

func runPermissionRouter(secureGroup *echo.Group, permissionCtrl *controllers.PermissionController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/permission", permissionCtrl.GetPermissions, authMW.AuthorizeAny(authz.PermissionsView, authz.PermissionsManage))
	secureGroup.GET("/permission/:id", permissionCtrl.FindPermission, authMW.AuthorizeAny(authz.PermissionsView, authz.PermissionsManage))
	secureGroup.POST("/permission", permissionCtrl.CreatePermission, authMW.AuthorizeAny(authz.PermissionsManage))
	secureGroup.PUT("/permission/:id", permissionCtrl.UpdatePermission, authMW.AuthorizeAny(authz.PermissionsManage))
	secureGroup.DELETE("/permission/:id", permissionCtrl.DeletePermission, authMW.AuthorizeAny(authz.PermissionsManage))
}
