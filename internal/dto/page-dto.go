// dto/page-dto.go
// Package dto содержит структуры передачи данных.
package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type PageDTO struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	Status          string     `json:"status"`
	MetaTitle       *string    `json:"meta_title,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	AuthorID        uint64     `json:"author_id"`
	AuthorName      string     `json:"author_name,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

type CreatePageDTO struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Slug            string  `json:"slug" validate:"required,max=255,slug"`
	Content         string  `json:"content" validate:"omitempty"`
	Status          string  `json:"status" validate:"omitempty,page_status"`
	MetaTitle       *string `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription *string `json:"meta_description" validate:"omitempty,max=500"`
}

// UpdatePageDTO - частичное обновление. null/v8 позволяет отличить
// "поле не прислали" от "поле прислали со значением null".
type UpdatePageDTO struct {
	Title           null.String `json:"title" validate:"omitempty,max=255"`
	Slug            null.String `json:"slug" validate:"omitempty,max=255,slug"`
	Content         null.String `json:"content" validate:"omitempty"`
	Status          null.String `json:"status" validate:"omitempty,page_status"`
	MetaTitle       null.String `json:"meta_title" validate:"omitempty,max=255"`
	MetaDescription null.String `json:"meta_description" validate:"omitempty,max=500"`
}

type PageListResponseDTO struct {
	List       []PageDTO `json:"list"`
	Pagination PaginationDTO
}
