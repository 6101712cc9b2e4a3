package routes

import (
	"github.com/labstack/echo/v4"

	"cms-system/internal/authz"
	"cms-system/internal/controllers"
	"cms-system/pkg/middleware"
)

func runRoleRouter(secureGroup *echo.Group, roleCtrl *controllers.RoleController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/role", roleCtrl.GetRoles, authMW.AuthorizeAny(authz.RolesView))
	secureGroup.GET("/role/:id", roleCtrl.FindRole, authMW.AuthorizeAny(authz.RolesView))
	secureGroup.POST("/role", roleCtrl.CreateRole, authMW.AuthorizeAny(authz.RolesCreate))
	secureGroup.PUT("/role/:id", roleCtrl.UpdateRole, authMW.AuthorizeAny(authz.RolesUpdate))
	secureGroup.DELETE("/role/:id", roleCtrl.DeleteRole, authMW.AuthorizeAny(authz.RolesDelete))

	secureGroup.GET("/role/:id/permissions", roleCtrl.GetRolePermissions, authMW.AuthorizeAny(authz.RolesView, authz.PermissionsView))
	secureGroup.PUT("/role/:id/permissions", roleCtrl.SetRolePermissions, authMW.AuthorizeAny(authz.PermissionsManage))
}
