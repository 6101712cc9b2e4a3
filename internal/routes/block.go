package routes

import (
	"github.com/labstack/echo/v4"

	"cms-system/internal/authz"
	"cms-system/internal/controllers"
	"cms-system/pkg/middleware"
)

func runBlockRouter(secureGroup *echo.Group, blockCtrl *controllers.BlockController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/block", blockCtrl.GetBlocks, authMW.AuthorizeAny(authz.BlocksView))
	secureGroup.GET("/block/:id", blockCtrl.FindBlock, authMW.AuthorizeAny(authz.BlocksView))
	secureGroup.POST("/block", blockCtrl.CreateBlock, authMW.AuthorizeAny(authz.BlocksCreate))
	secureGroup.PUT("/block/:id", blockCtrl.UpdateBlock, authMW.AuthorizeAny(authz.BlocksUpdate))
	secureGroup.DELETE("/block/:id", blockCtrl.DeleteBlock, authMW.AuthorizeAny(authz.BlocksDelete))
}
