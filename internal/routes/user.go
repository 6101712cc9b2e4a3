package routes

import (
	"github.com/labstack/echo/v4"

	"cms-system/internal/authz"
	"cms-system/internal/controllers"
	"cms-system/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/user", userCtrl.GetUsers, authMW.AuthorizeAny(authz.UsersView, authz.UsersManage))
	secureGroup.GET("/user/:id", userCtrl.FindUser, authMW.AuthorizeAny(authz.UsersView, authz.UsersManage))
	secureGroup.POST("/user", userCtrl.CreateUser, authMW.AuthorizeAny(authz.UsersManage))
	secureGroup.PUT("/user/:id", userCtrl.UpdateUser, authMW.AuthorizeAny(authz.UsersManage))
	secureGroup.DELETE("/user/:id", userCtrl.DeleteUser, authMW.AuthorizeAny(authz.UsersManage))
}
