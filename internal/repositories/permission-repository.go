package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cms-system/internal/entities"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/types"
)

const permissionTable = "permissions"

type PermissionRepositoryInterface interface {
	GetPermissions(ctx context.Context, filter types.Filter) ([]entities.Permission, uint64, error)
	FindPermissionByID(ctx context.Context, id uint64) (*entities.Permission, error)
	CreatePermission(ctx context.Context, permission entities.Permission) (uint64, error)
	UpdatePermission(ctx context.Context, id uint64, permission entities.Permission) error
	DeletePermission(ctx context.Context, id uint64) error
	GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error)
	GetUserPermissionsNames(ctx context.Context, userID uint64) ([]string, error)
}

type PermissionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPermissionRepository(storage *pgxpool.Pool, logger *zap.Logger) PermissionRepositoryInterface {
	return &PermissionRepository{storage: storage, logger: logger}
}

func scanPermission(row pgx.Row) (*entities.Permission, error) {
	var p entities.Permission
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&p.ID, &p.Name, &description, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования permission: %w", err)
	}

	if description.Valid {
		p.Description = &description.String
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return &p, nil
}

func (r *PermissionRepository) baseSelect() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select("id", "name", "description", "created_at", "updated_at").
		From(permissionTable)
}

func (r *PermissionRepository) GetPermissions(ctx context.Context, filter types.Filter) ([]entities.Permission, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			b = b.Where(sq.ILike{"name": "%" + filter.Search + "%"})
		}
		return b
	}

	countQuery, countArgs, err := applySearch(psql.Select("COUNT(*)").From(permissionTable)).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета привилегий: %w", err)
	}
	if total == 0 {
		return []entities.Permission{}, 0, nil
	}

	listBuilder := applySearch(r.baseSelect()).OrderBy("id ASC")
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

	var permissions []entities.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, 0, err
		}
		permissions = append(permissions, *p)
	}
	return permissions, total, rows.Err()
}

func (r *PermissionRepository) FindPermissionByID(ctx context.Context, id uint64) (*entities.Permission, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPermission(r.storage.QueryRow(ctx, query, args...))
}

func (r *PermissionRepository) CreatePermission(ctx context.Context, permission entities.Permission) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO permissions (name, description) VALUES ($1, $2) RETURNING id`,
		permission.Name, permission.Description,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Ошибка создания привилегии", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *PermissionRepository) UpdatePermission(ctx context.Context, id uint64, permission entities.Permission) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE permissions SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		permission.Name, permission.Description, time.Now(), id)
	if err != nil {
		r.logger.Error("Ошибка обновления привилегии", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PermissionRepository) DeletePermission(ctx context.Context, id uint64) error {
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE permission_id = $1`, id); err != nil {
			return err
		}
		result, err := tx.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("Ошибка удаления привилегии", zap.Uint64("id", id), zap.Error(err))
	}
	return err
}

// GetPermissionsNamesByRoleID возвращает имена привилегий роли.
// Источник истины для кеша привилегий.
func (r *PermissionRepository) GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT p.name
		 FROM role_permissions rp
		 JOIN permissions p ON p.id = rp.permission_id
		 WHERE rp.role_id = $1
		 ORDER BY p.name`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// GetUserPermissionsNames собирает привилегии пользователя по всем его ролям.
func (r *PermissionRepository) GetUserPermissionsNames(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT DISTINCT p.name
		 FROM user_roles ur
		 JOIN role_permissions rp ON rp.role_id = ur.role_id
		 JOIN permissions p ON p.id = rp.permission_id
		 WHERE ur.user_id = $1
		 ORDER BY p.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
