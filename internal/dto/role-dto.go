package dto

import "time"

type RoleDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateRoleDTO struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateRoleDTO struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type RolePermissionsDTO struct {
	RoleID        uint64   `json:"role_id"`
	PermissionIDs []uint64 `json:"permission_ids" validate:"required,dive,gt=0"`
}
