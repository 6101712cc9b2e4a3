package entities

import (
	"time"

	"cms-system/pkg/types"
)

// Статусы страницы.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
	PageStatusArchived  = "archived"
)

type Page struct {
	ID      uint64 `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Slug    string `json:"slug" db:"slug"`
	Content string `json:"content" db:"content"`
	Status  string `json:"status" db:"status"`

	MetaTitle       *string `json:"meta_title,omitempty" db:"meta_title"`
	MetaDescription *string `json:"meta_description,omitempty" db:"meta_description"`

	AuthorID    uint64     `json:"author_id" db:"author_id"`
	AuthorName  string     `json:"author_name,omitempty" db:"-"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`

	types.BaseEntity
	types.SoftDelete
}
