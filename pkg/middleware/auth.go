package middleware

import (
	"context"
	"net/http"
	"strings"

	"cms-system/internal/authz"
	"cms-system/internal/dto"
	"cms-system/pkg/contextkeys"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/service"
	"cms-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Authenticator - внешний коллаборатор гейта. Передаётся явно в конструктор,
// а не достаётся из глобального реестра.
type Authenticator interface {
	IsAuthenticated(c echo.Context) bool
	IsInRoles(userRoles []string, requiredRoles []string) bool
}

// IdentityLoader отдаёт полную идентичность пользователя (роли + привилегии)
// по ID из валидного токена.
type IdentityLoader interface {
	LoadUserClaims(ctx context.Context, userID uint64) (*dto.UserClaims, error)
}

type AuthMiddleware struct {
	jwtService  service.JWTService
	identity    IdentityLoader
	authService Authenticator
	logger      *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, identity IdentityLoader, authService Authenticator, logger *zap.Logger) *AuthMiddleware {
	if authService == nil {
		authService = NewContextAuthenticator()
	}
	return &AuthMiddleware{
		jwtService:  jwtSvc,
		identity:    identity,
		authService: authService,
		logger:      logger,
	}
}

// Auth - аутентификация: Bearer-токен -> валидация -> идентичность в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// 1. Извлекаем токен из заголовка
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrEmptyAuthHeader.Error(), nil), m.logger)
		}

		// 2. Проверяем формат заголовка "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrInvalidAuthHeader.Error(), nil), m.logger)
		}

		tokenString := parts[1]

		// 3. Валидируем токен
		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// 4. Убеждаемся, что это не refresh токен
		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrTokenIsNotAccess.Error(), nil), m.logger)
		}

		// 5. Загружаем идентичность (роли, привилегии) и кладём в контекст запроса
		userClaims, err := m.identity.LoadUserClaims(c.Request().Context(), claims.UserID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Не удалось загрузить данные пользователя", zap.Uint64("userID", claims.UserID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), err), m.logger)
		}

		newCtx := context.WithValue(c.Request().Context(), contextkeys.UserClaimsKey, userClaims)
		newCtx = context.WithValue(newCtx, contextkeys.UserIDKey, userClaims.UserID)
		c.SetRequest(c.Request().WithContext(newCtx))

		m.logger.Debug("AuthMiddleware: Пользователь успешно аутентифицирован", zap.Uint64("userID", userClaims.UserID))

		// 6. Если все в порядке, передаем управление следующему обработчику
		return next(c)
	}
}

// Authorize оборачивает обработчик требованиями маршрута. Проверки выполняются
// строго по порядку: аутентификация -> роли -> привилегии -> явный список
// пользователей; первая непройденная проверка и определяет ответ. Деталь
// непройденной проверки наружу не отдаётся - клиент видит только 401 или 403.
func (m *AuthMiddleware) Authorize(claims authz.Claims) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 0. Fail-fast на ошибки сборки пайплайна. Такие ошибки возвращаются
			// напрямую, минуя общий рендер, - это баг разработчика, а не запрос.
			if err := utils.RequireHandler("next", next); err != nil {
				return err
			}
			if c == nil || c.Request() == nil {
				return utils.RequireNotNil("request", nil)
			}

			// 1. Аутентификация
			if !m.authService.IsAuthenticated(c) {
				m.logger.Warn("Authorize: Запрос не аутентифицирован",
					zap.String("uri", c.Request().RequestURI))
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), nil), m.logger)
			}

			user, err := utils.UserClaimsFromContext(c)
			if err != nil {
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), err), m.logger)
			}

			// 2. Роли
			if len(claims.Roles) > 0 && !m.authService.IsInRoles(user.Roles, claims.Roles) {
				m.logger.Warn("Authorize: Роль не подходит",
					zap.Uint64("userID", user.UserID),
					zap.Strings("required", claims.Roles))
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, apperrors.ErrForbidden.Error(), nil), m.logger)
			}

			// 3. Привилегии. Проверка объявлена, но не реализована: любой маршрут,
			// требующий привилегий через Claims, закрыт безусловно. Поведение
			// сохранено намеренно, см. DESIGN.md; рабочий путь - AuthorizeAny.
			if len(claims.Permissions) > 0 {
				m.logger.Warn("Authorize: Маршрут требует привилегий - доступ закрыт",
					zap.Uint64("userID", user.UserID),
					zap.Strings("required", claims.Permissions))
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, apperrors.ErrForbidden.Error(), nil), m.logger)
			}

			// 4. Явный список пользователей
			if len(claims.Users) > 0 && !containsString(claims.Users, user.Username) {
				m.logger.Warn("Authorize: Пользователь не входит в список маршрута",
					zap.Uint64("userID", user.UserID))
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, apperrors.ErrForbidden.Error(), nil), m.logger)
			}

			// 5. Все проверки пройдены - вызываем исходный обработчик как есть.
			return next(c)
		}
	}
}

// AuthorizeAny пропускает запрос, если у пользователя есть хотя бы одна из
// перечисленных привилегий (или он суперпользователь).
func (m *AuthMiddleware) AuthorizeAny(permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := utils.RequireHandler("next", next); err != nil {
				return err
			}

			if !m.authService.IsAuthenticated(c) {
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), nil), m.logger)
			}

			user, err := utils.UserClaimsFromContext(c)
			if err != nil {
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), err), m.logger)
			}

			if user.HasPermission(authz.Superuser) {
				return next(c)
			}

			for _, p := range permissions {
				if user.HasPermission(p) {
					return next(c)
				}
			}

			m.logger.Warn("AuthorizeAny: Нет ни одной требуемой привилегии",
				zap.Uint64("userID", user.UserID),
				zap.Strings("required", permissions))
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, apperrors.ErrForbidden.Error(), nil), m.logger)
		}
	}
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
