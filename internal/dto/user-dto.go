package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type UserDTO struct {
	ID        uint64     `json:"id"`
	Username  string     `json:"username"`
	Fio       string     `json:"fio"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	Roles     []string   `json:"roles"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CreateUserDTO struct {
	Username string   `json:"username" validate:"required,min=3,max=100"`
	Fio      string   `json:"fio" validate:"required,max=255"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	RoleIDs  []uint64 `json:"role_ids" validate:"omitempty,dive,gt=0"`
}

type UpdateUserDTO struct {
	Username null.String `json:"username" validate:"omitempty,min=3,max=100"`
	Fio      null.String `json:"fio" validate:"omitempty,max=255"`
	Email    null.String `json:"email" validate:"omitempty,email"`
	Password null.String `json:"password" validate:"omitempty,min=6"`
	IsActive *bool       `json:"is_active"`
	RoleIDs  []uint64    `json:"role_ids" validate:"omitempty,dive,gt=0"`
}
