package dto

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
)

type BlockDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Region    string          `json:"region"`
	Position  int             `json:"position"`
	Content   json.RawMessage `json:"content"`
	PageID    *uint64         `json:"page_id,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt *time.Time      `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
}

type CreateBlockDTO struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Type     string          `json:"type" validate:"required,block_type"`
	Region   string          `json:"region" validate:"required,max=100"`
	Position int             `json:"position" validate:"omitempty,gte=0"`
	Content  json.RawMessage `json:"content" validate:"required"`
	PageID   *uint64         `json:"page_id" validate:"omitempty,gt=0"`
	IsActive *bool           `json:"is_active"`
}

type UpdateBlockDTO struct {
	Name     null.String     `json:"name" validate:"omitempty,max=255"`
	Type     null.String     `json:"type" validate:"omitempty,block_type"`
	Region   null.String     `json:"region" validate:"omitempty,max=100"`
	Position null.Int        `json:"position" validate:"omitempty,gte=0"`
	Content  json.RawMessage `json:"content" validate:"omitempty"`
	PageID   null.Int        `json:"page_id" validate:"omitempty"`
	IsActive *bool           `json:"is_active"`
}

type BlockListResponseDTO struct {
	List       []BlockDTO `json:"list"`
	Pagination PaginationDTO
}
