package services

import (
	"context"

	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/repositories"
	apperrors "cms-system/pkg/errors"
)

// IdentityService собирает полную идентичность пользователя для middleware:
// имя, роли и объединённый набор привилегий по всем ролям (через кеш).
type IdentityService struct {
	userRepo       repositories.UserRepositoryInterface
	permissionsSvc AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewIdentityService(
	userRepo repositories.UserRepositoryInterface,
	permissionsSvc AuthPermissionServiceInterface,
	logger *zap.Logger,
) *IdentityService {
	return &IdentityService{
		userRepo:       userRepo,
		permissionsSvc: permissionsSvc,
		logger:         logger,
	}
}

func (s *IdentityService) LoadUserClaims(ctx context.Context, userID uint64) (*dto.UserClaims, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn("IdentityService: пользователь из токена не найден", zap.Uint64("userID", userID), zap.Error(err))
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		s.logger.Warn("IdentityService: попытка входа деактивированного пользователя", zap.Uint64("userID", userID))
		return nil, apperrors.ErrUnauthorized
	}

	roleIDs, err := s.userRepo.GetUserRoleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var permissions []string
	for _, roleID := range roleIDs {
		names, err := s.permissionsSvc.GetRolePermissionsNames(ctx, roleID)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			permissions = append(permissions, name)
		}
	}

	return &dto.UserClaims{
		UserID:      user.ID,
		Username:    user.Username,
		Roles:       user.Roles,
		Permissions: permissions,
	}, nil
}
