package routes

import (
	"github.com/labstack/echo/v4"

	"cms-system/internal/controllers"
	"cms-system/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.RefreshToken)
		authGroup.POST("/reset_password/request", authCtrl.RequestPasswordReset)
		authGroup.POST("/reset_password", authCtrl.ResetPassword)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
