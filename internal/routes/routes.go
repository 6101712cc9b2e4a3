package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cms-system/internal/controllers"
	"cms-system/internal/repositories"
	"cms-system/internal/services"
	"cms-system/pkg/config"
	"cms-system/pkg/middleware"
	"cms-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	// --- 1. РЕПОЗИТОРИИ ---
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	roleRepo := repositories.NewRoleRepository(dbConn, logger)
	permissionRepo := repositories.NewPermissionRepository(dbConn, logger)
	pageRepo := repositories.NewPageRepository(dbConn, logger)
	blockRepo := repositories.NewBlockRepository(dbConn, logger)

	// --- 2. СЕРВИСЫ ---
	authPermissionService := services.NewAuthPermissionService(permissionRepo, cacheRepo, logger, cfg.Cache.RolePermissionsTTL)
	identityService := services.NewIdentityService(userRepo, authPermissionService, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, logger, &cfg.Auth)
	userService := services.NewUserService(userRepo, logger)
	roleService := services.NewRoleService(roleRepo, authPermissionService, logger)
	permissionService := services.NewPermissionService(permissionRepo, logger)
	pageService := services.NewPageService(pageRepo, logger)
	blockService := services.NewBlockService(blockRepo, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, jwtSvc, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	roleCtrl := controllers.NewRoleController(roleService, logger)
	permissionCtrl := controllers.NewPermissionController(permissionService, logger)
	pageCtrl := controllers.NewPageController(pageService, logger)
	blockCtrl := controllers.NewBlockController(blockService, logger)
	exportCtrl := controllers.NewExportController(pageService, blockService, logger)

	// --- 4. РОУТЕРЫ ---
	// Аутентификация и авторизация собираются один раз при старте и передаются
	// в роутеры явно.
	authMW := middleware.NewAuthMiddleware(jwtSvc, identityService, nil, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authCtrl, authMW)
	runPageRouter(secureGroup, pageCtrl, authMW)
	runBlockRouter(secureGroup, blockCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)
	runRoleRouter(secureGroup, roleCtrl, authMW)
	runPermissionRouter(secureGroup, permissionCtrl, authMW)
	runExportRouter(secureGroup, exportCtrl, authMW)
	runAdminRouter(secureGroup, cfg, authMW, authPermissionService, roleRepo, logger)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
