package entities

import (
	"encoding/json"

	"cms-system/pkg/types"
)

// Типы блоков. Контент блока хранится как JSON, структура зависит от типа.
const (
	BlockTypeText    = "text"
	BlockTypeHTML    = "html"
	BlockTypeImage   = "image"
	BlockTypeGallery = "gallery"
	BlockTypeMenu    = "menu"
)

type Block struct {
	ID       uint64          `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Type     string          `json:"type" db:"type"`
	Region   string          `json:"region" db:"region"`
	Position int             `json:"position" db:"position"`
	Content  json.RawMessage `json:"content" db:"content"`

	// Блок может быть привязан к странице, а может быть глобальным (nil).
	PageID *uint64 `json:"page_id,omitempty" db:"page_id"`

	IsActive bool `json:"is_active" db:"is_active"`

	types.BaseEntity
	types.SoftDelete
}
