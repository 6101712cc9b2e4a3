package services

import (
	"context"

	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/entities"
	"cms-system/internal/repositories"
	"cms-system/pkg/types"
	"cms-system/pkg/utils"
)

type PermissionServiceInterface interface {
	GetPermissions(ctx context.Context, filter types.Filter) ([]dto.PermissionDTO, uint64, error)
	FindPermissionByID(ctx context.Context, id uint64) (*dto.PermissionDTO, error)
	CreatePermission(ctx context.Context, payload dto.CreatePermissionDTO) (*dto.PermissionDTO, error)
	UpdatePermission(ctx context.Context, id uint64, payload dto.UpdatePermissionDTO) (*dto.PermissionDTO, error)
	DeletePermission(ctx context.Context, id uint64) error
}

type PermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	logger         *zap.Logger
}

func NewPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	logger *zap.Logger,
) PermissionServiceInterface {
	return &PermissionService{permissionRepo: permissionRepo, logger: logger}
}

func permissionToDTO(p *entities.Permission) *dto.PermissionDTO {
	out := dto.PermissionDTO{ID: p.ID, Name: p.Name}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.CreatedAt != nil {
		out.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		out.UpdatedAt = *p.UpdatedAt
	}
	return &out
}

func (s *PermissionService) GetPermissions(ctx context.Context, filter types.Filter) ([]dto.PermissionDTO, uint64, error) {
	permissions, total, err := s.permissionRepo.GetPermissions(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.PermissionDTO, 0, len(permissions))
	for i := range permissions {
		list = append(list, *permissionToDTO(&permissions[i]))
	}
	return list, total, nil
}

func (s *PermissionService) FindPermissionByID(ctx context.Context, id uint64) (*dto.PermissionDTO, error) {
	permission, err := s.permissionRepo.FindPermissionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return permissionToDTO(permission), nil
}

func (s *PermissionService) CreatePermission(ctx context.Context, payload dto.CreatePermissionDTO) (*dto.PermissionDTO, error) {
	permission := entities.Permission{
		Name:        payload.Name,
		Description: utils.StringPtr(payload.Description),
	}
	id, err := s.permissionRepo.CreatePermission(ctx, permission)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Привилегия создана", zap.Uint64("id", id), zap.String("name", permission.Name))
	return s.FindPermissionByID(ctx, id)
}

func (s *PermissionService) UpdatePermission(ctx context.Context, id uint64, payload dto.UpdatePermissionDTO) (*dto.PermissionDTO, error) {
	permission, err := s.permissionRepo.FindPermissionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != "" {
		permission.Name = payload.Name
	}
	if payload.Description != "" {
		permission.Description = utils.StringPtr(payload.Description)
	}

	if err := s.permissionRepo.UpdatePermission(ctx, id, *permission); err != nil {
		return nil, err
	}
	return s.FindPermissionByID(ctx, id)
}

func (s *PermissionService) DeletePermission(ctx context.Context, id uint64) error {
	return s.permissionRepo.DeletePermission(ctx, id)
}
