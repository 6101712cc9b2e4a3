package routes

import (
	"github.com/labstack/echo/v4"

	"cms-system/internal/authz"
	"cms-system/internal/controllers"
	"cms-system/pkg/middleware"
)

func runPageRouter(secureGroup *echo.Group, pageCtrl *controllers.PageController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/page", pageCtrl.GetPages, authMW.AuthorizeAny(authz.PagesView))
	secureGroup.GET("/page/:id", pageCtrl.FindPage, authMW.AuthorizeAny(authz.PagesView))
	secureGroup.GET("/page/slug/:slug", pageCtrl.FindPageBySlug, authMW.AuthorizeAny(authz.PagesView))
	secureGroup.POST("/page", pageCtrl.CreatePage, authMW.AuthorizeAny(authz.PagesCreate))
	secureGroup.PUT("/page/:id", pageCtrl.UpdatePage, authMW.AuthorizeAny(authz.PagesUpdate))
	secureGroup.POST("/page/:id/publish", pageCtrl.PublishPage, authMW.AuthorizeAny(authz.PagesPublish))
	secureGroup.POST("/page/:id/unpublish", pageCtrl.UnpublishPage, authMW.AuthorizeAny(authz.PagesPublish))
	secureGroup.DELETE("/page/:id", pageCtrl.DeletePage, authMW.AuthorizeAny(authz.PagesDelete))
}
