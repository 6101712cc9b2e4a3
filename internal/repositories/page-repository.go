package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cms-system/internal/entities"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/types"
)

const pageTable = "pages"

// ЕДИНАЯ КАРТА ПОЛЕЙ (Фильтр + Сортировка)
var pageFieldMap = map[string]string{
	"id":           "p.id",
	"title":        "p.title",
	"slug":         "p.slug",
	"status":       "p.status",
	"author_id":    "p.author_id",
	"published_at": "p.published_at",
	"created_at":   "p.created_at",
	"updated_at":   "p.updated_at",
}

type PageRepositoryInterface interface {
	GetPages(ctx context.Context, filter types.Filter) ([]entities.Page, uint64, error)
	FindPageByID(ctx context.Context, id uint64) (*entities.Page, error)
	FindPageBySlug(ctx context.Context, slug string) (*entities.Page, error)
	CreatePage(ctx context.Context, page entities.Page) (uint64, error)
	UpdatePage(ctx context.Context, id uint64, page entities.Page) error
	SetPageStatus(ctx context.Context, id uint64, status string, publishedAt *time.Time) error
	DeletePage(ctx context.Context, id uint64) error
}

type PageRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPageRepository(storage *pgxpool.Pool, logger *zap.Logger) PageRepositoryInterface {
	return &PageRepository{storage: storage, logger: logger}
}

func scanPage(row pgx.Row) (*entities.Page, error) {
	var p entities.Page
	var metaTitle, metaDescription, authorName sql.NullString
	var publishedAt, createdAt, updatedAt, deletedAt sql.NullTime

	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Status,
		&metaTitle, &metaDescription,
		&p.AuthorID, &authorName, &publishedAt,
		&createdAt, &updatedAt, &deletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования page: %w", err)
	}

	if metaTitle.Valid {
		p.MetaTitle = &metaTitle.String
	}
	if metaDescription.Valid {
		p.MetaDescription = &metaDescription.String
	}
	if authorName.Valid {
		p.AuthorName = authorName.String
	}
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.Time
	}

	return &p, nil
}

func (r *PageRepository) baseSelect() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(
		"p.id", "p.title", "p.slug", "p.content", "p.status",
		"p.meta_title", "p.meta_description",
		"p.author_id", "u.fio", "p.published_at",
		"p.created_at", "p.updated_at", "p.deleted_at",
	).
		From(pageTable + " p").
		LeftJoin("users u ON u.id = p.author_id").
		Where("p.deleted_at IS NULL")
}

func (r *PageRepository) GetPages(ctx context.Context, filter types.Filter) ([]entities.Page, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilters := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"p.title": pat},
				sq.ILike{"p.slug": pat},
				sq.ILike{"p.content": pat},
			})
		}
		for field, raw := range filter.Filter {
			column, ok := pageFieldMap[field]
			if !ok {
				continue
			}
			values := strings.Split(fmt.Sprintf("%v", raw), ",")
			if len(values) == 1 {
				b = b.Where(sq.Eq{column: values[0]})
			} else {
				b = b.Where(sq.Eq{column: values})
			}
		}
		return b
	}

	countBuilder := applyFilters(psql.Select("COUNT(*)").
		From(pageTable + " p").
		Where("p.deleted_at IS NULL"))

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета страниц: %w", err)
	}
	if total == 0 {
		return []entities.Page{}, 0, nil
	}

	listBuilder := applyFilters(r.baseSelect())

	orderApplied := false
	for field, direction := range filter.Sort {
		if column, ok := pageFieldMap[field]; ok {
			listBuilder = listBuilder.OrderBy(column + " " + strings.ToUpper(direction))
			orderApplied = true
		}
	}
	if !orderApplied {
		listBuilder = listBuilder.OrderBy("p.created_at DESC")
	}

	if filter.Limit > 0 {
		listBuilder = listBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var pages []entities.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, 0, err
		}
		pages = append(pages, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return pages, total, nil
}

func (r *PageRepository) FindPageByID(ctx context.Context, id uint64) (*entities.Page, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPage(r.storage.QueryRow(ctx, query, args...))
}

func (r *PageRepository) FindPageBySlug(ctx context.Context, slug string) (*entities.Page, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"p.slug": slug}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPage(r.storage.QueryRow(ctx, query, args...))
}

func (r *PageRepository) CreatePage(ctx context.Context, page entities.Page) (uint64, error) {
	query := `
		INSERT INTO pages (title, slug, content, status, meta_title, meta_description, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		page.Title, page.Slug, page.Content, page.Status,
		page.MetaTitle, page.MetaDescription, page.AuthorID, page.PublishedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Ошибка создания страницы", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *PageRepository) UpdatePage(ctx context.Context, id uint64, page entities.Page) error {
	query := `
		UPDATE pages
		SET title = $1, slug = $2, content = $3, status = $4,
		    meta_title = $5, meta_description = $6, published_at = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL`

	result, err := r.storage.Exec(ctx, query,
		page.Title, page.Slug, page.Content, page.Status,
		page.MetaTitle, page.MetaDescription, page.PublishedAt, time.Now(), id,
	)
	if err != nil {
		r.logger.Error("Ошибка обновления страницы", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PageRepository) SetPageStatus(ctx context.Context, id uint64, status string, publishedAt *time.Time) error {
	query := `UPDATE pages SET status = $1, published_at = $2, updated_at = $3 WHERE id = $4 AND deleted_at IS NULL`
	result, err := r.storage.Exec(ctx, query, status, publishedAt, time.Now(), id)
	if err != nil {
		r.logger.Error("Ошибка смены статуса страницы", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePage - мягкое удаление.
func (r *PageRepository) DeletePage(ctx context.Context, id uint64) error {
	query := `UPDATE pages SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.storage.Exec(ctx, query, time.Now(), id)
	if err != nil {
		r.logger.Error("Ошибка удаления страницы", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
