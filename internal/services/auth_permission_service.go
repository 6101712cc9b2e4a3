package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cms-system/internal/repositories"
	apperrors "cms-system/pkg/errors"
)

type AuthPermissionServiceInterface interface {
	GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error)
	InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error
}

type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

func rolePermissionsCacheKey(roleID uint64) string {
	return fmt.Sprintf("auth:permissions:role:%d", roleID)
}

func (s *AuthPermissionService) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	cacheKey := rolePermissionsCacheKey(roleID)
	var permissions []string

	// 1. Попытка получить данные из Redis-кеша
	cachedJSON, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if err := json.Unmarshal([]byte(cachedJSON), &permissions); err == nil {
			s.logger.Debug("AuthPermissionService: Привилегии роли найдены в кеше", zap.Uint64("roleID", roleID))
			return permissions, nil
		} else {
			s.logger.Warn("AuthPermissionService: Ошибка при десериализации привилегий из кеша",
				zap.Error(err), zap.String("key", cacheKey), zap.Uint64("roleID", roleID))
		}
	} else {
		s.logger.Debug("AuthPermissionService: Привилегии роли не найдены в кеше, запрос к БД",
			zap.Uint64("roleID", roleID), zap.Error(errGet))
	}

	// 2. Кеш пуст или повреждён - читаем из базы
	permissions, errDB := s.permissionRepo.GetPermissionsNamesByRoleID(ctx, roleID)
	if errDB != nil {
		s.logger.Error("AuthPermissionService: Не удалось получить привилегии для роли из БД",
			zap.Uint64("roleID", roleID), zap.Error(errDB))
		return nil, apperrors.ErrInternalServer
	}

	// 3. Кешируем обратно в Redis
	if len(permissions) > 0 {
		permissionsJSON, errMarshal := json.Marshal(permissions)
		if errMarshal != nil {
			s.logger.Error("AuthPermissionService: Не удалось сериализовать привилегии для кеширования",
				zap.Uint64("roleID", roleID), zap.Error(errMarshal))
		} else if errSet := s.cacheRepo.Set(ctx, cacheKey, string(permissionsJSON), s.cacheTTL); errSet != nil {
			s.logger.Error("AuthPermissionService: Не удалось сохранить привилегии роли в кеш",
				zap.Uint64("roleID", roleID), zap.Error(errSet))
		}
	}
	return permissions, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error {
	cacheKey := rolePermissionsCacheKey(roleID)
	if err := s.cacheRepo.Del(ctx, cacheKey); err != nil {
		s.logger.Error("AuthPermissionService: Ошибка инвалидации кеша привилегий для роли",
			zap.Uint64("roleID", roleID), zap.Error(err))
		return err
	}
	s.logger.Info("AuthPermissionService: Кеш привилегий для роли инвалидирован", zap.Uint64("roleID", roleID))
	return nil
}
