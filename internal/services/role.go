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

type RoleServiceInterface interface {
	GetRoles(ctx context.Context, filter types.Filter) ([]dto.RoleDTO, uint64, error)
	FindRoleByID(ctx context.Context, id uint64) (*dto.RoleDTO, error)
	CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*dto.RoleDTO, error)
	UpdateRole(ctx context.Context, id uint64, payload dto.UpdateRoleDTO) (*dto.RoleDTO, error)
	DeleteRole(ctx context.Context, id uint64) error
	SetRolePermissions(ctx context.Context, payload dto.RolePermissionsDTO) error
	GetRolePermissions(ctx context.Context, roleID uint64) ([]string, error)
}

type RoleService struct {
	roleRepo       repositories.RoleRepositoryInterface
	permissionsSvc AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewRoleService(
	roleRepo repositories.RoleRepositoryInterface,
	permissionsSvc AuthPermissionServiceInterface,
	logger *zap.Logger,
) RoleServiceInterface {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionsSvc: permissionsSvc,
		logger:         logger,
	}
}

func roleToDTO(r *entities.Role) *dto.RoleDTO {
	out := dto.RoleDTO{ID: r.ID, Name: r.Name}
	if r.Description != nil {
		out.Description = *r.Description
	}
	if r.CreatedAt != nil {
		out.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		out.UpdatedAt = *r.UpdatedAt
	}
	return &out
}

func (s *RoleService) GetRoles(ctx context.Context, filter types.Filter) ([]dto.RoleDTO, uint64, error) {
	roles, total, err := s.roleRepo.GetRoles(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.RoleDTO, 0, len(roles))
	for i := range roles {
		list = append(list, *roleToDTO(&roles[i]))
	}
	return list, total, nil
}

func (s *RoleService) FindRoleByID(ctx context.Context, id uint64) (*dto.RoleDTO, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return roleToDTO(role), nil
}

func (s *RoleService) CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*dto.RoleDTO, error) {
	role := entities.Role{Name: payload.Name}
	if payload.Description != "" {
		role.Description = utils.StringPtr(payload.Description)
	}

	id, err := s.roleRepo.CreateRole(ctx, role, nil)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Роль создана", zap.Uint64("id", id), zap.String("name", role.Name))
	return s.FindRoleByID(ctx, id)
}

func (s *RoleService) UpdateRole(ctx context.Context, id uint64, payload dto.UpdateRoleDTO) (*dto.RoleDTO, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != "" {
		role.Name = payload.Name
	}
	if payload.Description != "" {
		role.Description = utils.StringPtr(payload.Description)
	}

	if err := s.roleRepo.UpdateRole(ctx, id, *role); err != nil {
		return nil, err
	}
	return s.FindRoleByID(ctx, id)
}

func (s *RoleService) DeleteRole(ctx context.Context, id uint64) error {
	if err := s.roleRepo.DeleteRole(ctx, id); err != nil {
		return err
	}
	// Кеш привилегий роли больше не валиден
	return s.permissionsSvc.InvalidateRolePermissionsCache(ctx, id)
}

func (s *RoleService) SetRolePermissions(ctx context.Context, payload dto.RolePermissionsDTO) error {
	if err := s.roleRepo.SetRolePermissions(ctx, payload.RoleID, payload.PermissionIDs); err != nil {
		return err
	}
	s.logger.Info("Привилегии роли обновлены",
		zap.Uint64("roleID", payload.RoleID), zap.Int("count", len(payload.PermissionIDs)))
	return s.permissionsSvc.InvalidateRolePermissionsCache(ctx, payload.RoleID)
}

func (s *RoleService) GetRolePermissions(ctx context.Context, roleID uint64) ([]string, error) {
	return s.permissionsSvc.GetRolePermissionsNames(ctx, roleID)
}
