// Файл: internal/entities/user-entity.go
package entities

import (
	"cms-system/pkg/types"
)

type User struct {
	ID       uint64 `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Fio      string `json:"fio" db:"fio"`
	Email    string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	IsActive bool `json:"is_active" db:"is_active"`

	// Заполняется join-ом на user_roles, в таблице users колонки нет.
	Roles []string `json:"roles,omitempty" db:"-"`

	types.BaseEntity
	types.SoftDelete
}
