package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/entities"
	"cms-system/internal/repositories"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/types"
)

type PageServiceInterface interface {
	GetPages(ctx context.Context, filter types.Filter) (*dto.PageListResponseDTO, error)
	FindPageByID(ctx context.Context, id uint64) (*dto.PageDTO, error)
	FindPageBySlug(ctx context.Context, slug string) (*dto.PageDTO, error)
	CreatePage(ctx context.Context, payload dto.CreatePageDTO, authorID uint64) (*dto.PageDTO, error)
	UpdatePage(ctx context.Context, id uint64, payload dto.UpdatePageDTO) (*dto.PageDTO, error)
	PublishPage(ctx context.Context, id uint64) (*dto.PageDTO, error)
	UnpublishPage(ctx context.Context, id uint64) (*dto.PageDTO, error)
	DeletePage(ctx context.Context, id uint64) error
}

type PageService struct {
	pageRepo repositories.PageRepositoryInterface
	logger   *zap.Logger
}

func NewPageService(pageRepo repositories.PageRepositoryInterface, logger *zap.Logger) PageServiceInterface {
	return &PageService{pageRepo: pageRepo, logger: logger}
}

func pageToDTO(p *entities.Page) *dto.PageDTO {
	return &dto.PageDTO{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Status:          p.Status,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		AuthorID:        p.AuthorID,
		AuthorName:      p.AuthorName,
		PublishedAt:     p.PublishedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (s *PageService) GetPages(ctx context.Context, filter types.Filter) (*dto.PageListResponseDTO, error) {
	pages, total, err := s.pageRepo.GetPages(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]dto.PageDTO, 0, len(pages))
	for i := range pages {
		list = append(list, *pageToDTO(&pages[i]))
	}

	page := 1
	if filter.Limit > 0 {
		page = filter.Offset/filter.Limit + 1
	}
	return &dto.PageListResponseDTO{
		List:       list,
		Pagination: dto.PaginationDTO{TotalCount: total, Page: page, Limit: filter.Limit},
	}, nil
}

func (s *PageService) FindPageByID(ctx context.Context, id uint64) (*dto.PageDTO, error) {
	page, err := s.pageRepo.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return pageToDTO(page), nil
}

func (s *PageService) FindPageBySlug(ctx context.Context, slug string) (*dto.PageDTO, error) {
	page, err := s.pageRepo.FindPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return pageToDTO(page), nil
}

// ensureSlugFree проверяет уникальность slug, excludeID исключает саму страницу при обновлении.
func (s *PageService) ensureSlugFree(ctx context.Context, slug string, excludeID uint64) error {
	existing, err := s.pageRepo.FindPageBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return apperrors.NewHttpError(
			http.StatusConflict,
			"Страница с таким slug уже существует",
			nil,
			map[string]interface{}{"slug": slug},
		)
	}
	return nil
}

func (s *PageService) CreatePage(ctx context.Context, payload dto.CreatePageDTO, authorID uint64) (*dto.PageDTO, error) {
	if err := s.ensureSlugFree(ctx, payload.Slug, 0); err != nil {
		return nil, err
	}

	status := payload.Status
	if status == "" {
		status = entities.PageStatusDraft
	}

	page := entities.Page{
		Title:           payload.Title,
		Slug:            payload.Slug,
		Content:         payload.Content,
		Status:          status,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		AuthorID:        authorID,
	}
	if status == entities.PageStatusPublished {
		now := time.Now()
		page.PublishedAt = &now
	}

	id, err := s.pageRepo.CreatePage(ctx, page)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Страница создана", zap.Uint64("id", id), zap.String("slug", page.Slug))
	return s.FindPageByID(ctx, id)
}

func (s *PageService) UpdatePage(ctx context.Context, id uint64, payload dto.UpdatePageDTO) (*dto.PageDTO, error) {
	page, err := s.pageRepo.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Частичное обновление: переносим только присланные поля
	if payload.Title.Valid {
		page.Title = payload.Title.String
	}
	if payload.Slug.Valid && payload.Slug.String != page.Slug {
		if err := s.ensureSlugFree(ctx, payload.Slug.String, id); err != nil {
			return nil, err
		}
		page.Slug = payload.Slug.String
	}
	if payload.Content.Valid {
		page.Content = payload.Content.String
	}
	if payload.MetaTitle.Valid {
		page.MetaTitle = &payload.MetaTitle.String
	}
	if payload.MetaDescription.Valid {
		page.MetaDescription = &payload.MetaDescription.String
	}
	if payload.Status.Valid && payload.Status.String != page.Status {
		page.Status = payload.Status.String
		if page.Status == entities.PageStatusPublished && page.PublishedAt == nil {
			now := time.Now()
			page.PublishedAt = &now
		}
	}

	if err := s.pageRepo.UpdatePage(ctx, id, *page); err != nil {
		return nil, err
	}
	return s.FindPageByID(ctx, id)
}

func (s *PageService) PublishPage(ctx context.Context, id uint64) (*dto.PageDTO, error) {
	page, err := s.pageRepo.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	publishedAt := page.PublishedAt
	if publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}
	if err := s.pageRepo.SetPageStatus(ctx, id, entities.PageStatusPublished, publishedAt); err != nil {
		return nil, err
	}
	s.logger.Info("Страница опубликована", zap.Uint64("id", id))
	return s.FindPageByID(ctx, id)
}

func (s *PageService) UnpublishPage(ctx context.Context, id uint64) (*dto.PageDTO, error) {
	page, err := s.pageRepo.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.pageRepo.SetPageStatus(ctx, id, entities.PageStatusDraft, page.PublishedAt); err != nil {
		return nil, err
	}
	s.logger.Info("Страница снята с публикации", zap.Uint64("id", id))
	return s.FindPageByID(ctx, id)
}

func (s *PageService) DeletePage(ctx context.Context, id uint64) error {
	return s.pageRepo.DeletePage(ctx, id)
}
