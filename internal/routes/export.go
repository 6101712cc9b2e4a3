package routes

import (
	"github.com/labstack/echo/v4"

	"cms-system/internal/authz"
	"cms-system/internal/controllers"
	"cms-system/pkg/middleware"
)

func runExportRouter(secureGroup *echo.Group, exportCtrl *controllers.ExportController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/export/pages", exportCtrl.ExportPages, authMW.AuthorizeAny(authz.ContentExport))
	secureGroup.GET("/export/blocks", exportCtrl.ExportBlocks, authMW.AuthorizeAny(authz.ContentExport))
}
