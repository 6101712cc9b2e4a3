package entities

import "cms-system/pkg/types"

type Permission struct {
	ID          uint64  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`

	types.BaseEntity
}
