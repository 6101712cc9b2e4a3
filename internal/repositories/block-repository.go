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

const blockTable = "blocks"

var blockFieldMap = map[string]string{
	"id":         "b.id",
	"name":       "b.name",
	"type":       "b.type",
	"region":     "b.region",
	"position":   "b.position",
	"page_id":    "b.page_id",
	"is_active":  "b.is_active",
	"created_at": "b.created_at",
	"updated_at": "b.updated_at",
}

type BlockRepositoryInterface interface {
	GetBlocks(ctx context.Context, filter types.Filter) ([]entities.Block, uint64, error)
	FindBlockByID(ctx context.Context, id uint64) (*entities.Block, error)
	CreateBlock(ctx context.Context, block entities.Block) (uint64, error)
	UpdateBlock(ctx context.Context, id uint64, block entities.Block) error
	DeleteBlock(ctx context.Context, id uint64) error
}

type BlockRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBlockRepository(storage *pgxpool.Pool, logger *zap.Logger) BlockRepositoryInterface {
	return &BlockRepository{storage: storage, logger: logger}
}

func scanBlock(row pgx.Row) (*entities.Block, error) {
	var b entities.Block
	var pageID sql.NullInt64
	var createdAt, updatedAt, deletedAt sql.NullTime

	err := row.Scan(
		&b.ID, &b.Name, &b.Type, &b.Region, &b.Position,
		&b.Content, &pageID, &b.IsActive,
		&createdAt, &updatedAt, &deletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования block: %w", err)
	}

	if pageID.Valid {
		v := uint64(pageID.Int64)
		b.PageID = &v
	}
	if createdAt.Valid {
		b.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.Time
	}
	if deletedAt.Valid {
		b.DeletedAt = &deletedAt.Time
	}

	return &b, nil
}

func (r *BlockRepository) baseSelect() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(
		"b.id", "b.name", "b.type", "b.region", "b.position",
		"b.content", "b.page_id", "b.is_active",
		"b.created_at", "b.updated_at", "b.deleted_at",
	).
		From(blockTable + " b").
		Where("b.deleted_at IS NULL")
}

func (r *BlockRepository) GetBlocks(ctx context.Context, filter types.Filter) ([]entities.Block, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilters := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"b.name": pat},
				sq.ILike{"b.region": pat},
			})
		}
		for field, raw := range filter.Filter {
			column, ok := blockFieldMap[field]
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

	countQuery, countArgs, err := applyFilters(psql.Select("COUNT(*)").
		From(blockTable + " b").
		Where("b.deleted_at IS NULL")).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета блоков: %w", err)
	}
	if total == 0 {
		return []entities.Block{}, 0, nil
	}

	listBuilder := applyFilters(r.baseSelect())

	orderApplied := false
	for field, direction := range filter.Sort {
		if column, ok := blockFieldMap[field]; ok {
			listBuilder = listBuilder.OrderBy(column + " " + strings.ToUpper(direction))
			orderApplied = true
		}
	}
	if !orderApplied {
		// Дефолтный порядок - как блоки лежат в регионе
		listBuilder = listBuilder.OrderBy("b.region ASC", "b.position ASC")
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

	var blocks []entities.Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, 0, err
		}
		blocks = append(blocks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return blocks, total, nil
}

func (r *BlockRepository) FindBlockByID(ctx context.Context, id uint64) (*entities.Block, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanBlock(r.storage.QueryRow(ctx, query, args...))
}

func (r *BlockRepository) CreateBlock(ctx context.Context, block entities.Block) (uint64, error) {
	query := `
		INSERT INTO blocks (name, type, region, position, content, page_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		block.Name, block.Type, block.Region, block.Position,
		block.Content, block.PageID, block.IsActive,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Ошибка создания блока", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *BlockRepository) UpdateBlock(ctx context.Context, id uint64, block entities.Block) error {
	query := `
		UPDATE blocks
		SET name = $1, type = $2, region = $3, position = $4,
		    content = $5, page_id = $6, is_active = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL`

	result, err := r.storage.Exec(ctx, query,
		block.Name, block.Type, block.Region, block.Position,
		block.Content, block.PageID, block.IsActive, time.Now(), id,
	)
	if err != nil {
		r.logger.Error("Ошибка обновления блока", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BlockRepository) DeleteBlock(ctx context.Context, id uint64) error {
	query := `UPDATE blocks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.storage.Exec(ctx, query, time.Now(), id)
	if err != nil {
		r.logger.Error("Ошибка удаления блока", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
