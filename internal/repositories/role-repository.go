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

const roleTable = "roles"

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context, filter types.Filter) ([]entities.Role, uint64, error)
	FindRoleByID(ctx context.Context, id uint64) (*entities.Role, error)
	FindRoleByName(ctx context.Context, name string) (*entities.Role, error)
	CreateRole(ctx context.Context, role entities.Role, permissionIDs []uint64) (uint64, error)
	UpdateRole(ctx context.Context, id uint64, role entities.Role) error
	DeleteRole(ctx context.Context, id uint64) error
	SetRolePermissions(ctx context.Context, roleID uint64, permissionIDs []uint64) error
}

type RoleRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRoleRepository(storage *pgxpool.Pool, logger *zap.Logger) RoleRepositoryInterface {
	return &RoleRepository{storage: storage, logger: logger}
}

func scanRole(row pgx.Row) (*entities.Role, error) {
	var role entities.Role
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&role.ID, &role.Name, &description, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования role: %w", err)
	}

	if description.Valid {
		role.Description = &description.String
	}
	if createdAt.Valid {
		role.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		role.UpdatedAt = &updatedAt.Time
	}
	return &role, nil
}

func (r *RoleRepository) baseSelect() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select("id", "name", "description", "created_at", "updated_at").
		From(roleTable)
}

func (r *RoleRepository) GetRoles(ctx context.Context, filter types.Filter) ([]entities.Role, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			b = b.Where(sq.ILike{"name": "%" + filter.Search + "%"})
		}
		return b
	}

	countQuery, countArgs, err := applySearch(psql.Select("COUNT(*)").From(roleTable)).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета ролей: %w", err)
	}
	if total == 0 {
		return []entities.Role{}, 0, nil
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

	var roles []entities.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, 0, err
		}
		roles = append(roles, *role)
	}
	return roles, total, rows.Err()
}

func (r *RoleRepository) FindRoleByID(ctx context.Context, id uint64) (*entities.Role, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRole(r.storage.QueryRow(ctx, query, args...))
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, name string) (*entities.Role, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRole(r.storage.QueryRow(ctx, query, args...))
}

func (r *RoleRepository) CreateRole(ctx context.Context, role entities.Role, permissionIDs []uint64) (uint64, error) {
	var id uint64
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`,
			role.Name, role.Description,
		).Scan(&id); err != nil {
			return err
		}
		for _, pid := range permissionIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`, id, pid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Ошибка создания роли", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *RoleRepository) UpdateRole(ctx context.Context, id uint64, role entities.Role) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE roles SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		role.Name, role.Description, time.Now(), id)
	if err != nil {
		r.logger.Error("Ошибка обновления роли", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) DeleteRole(ctx context.Context, id uint64) error {
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE role_id = $1`, id); err != nil {
			return err
		}
		result, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("Ошибка удаления роли", zap.Uint64("id", id), zap.Error(err))
	}
	return err
}

// SetRolePermissions полностью заменяет набор привилегий роли.
func (r *RoleRepository) SetRolePermissions(ctx context.Context, roleID uint64, permissionIDs []uint64) error {
	return WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, roleID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		for _, pid := range permissionIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`, roleID, pid); err != nil {
				return err
			}
		}
		return nil
	})
}
