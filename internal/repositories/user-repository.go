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

const userTable = "users"

var userFieldMap = map[string]string{
	"id":         "u.id",
	"username":   "u.username",
	"fio":        "u.fio",
	"email":      "u.email",
	"is_active":  "u.is_active",
	"created_at": "u.created_at",
	"updated_at": "u.updated_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmailOrLogin(ctx context.Context, login string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User, roleIDs []uint64) (uint64, error)
	UpdateUser(ctx context.Context, id uint64, user entities.User, roleIDs []uint64) error
	UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error
	DeleteUser(ctx context.Context, id uint64) error
	GetUserRolesNames(ctx context.Context, userID uint64) ([]string, error)
	GetUserRoleIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var createdAt, updatedAt, deletedAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.Username, &u.Fio, &u.Email, &u.Password, &u.IsActive,
		&createdAt, &updatedAt, &deletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}

	if createdAt.Valid {
		u.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return &u, nil
}

func (r *UserRepository) baseSelect() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(
		"u.id", "u.username", "u.fio", "u.email", "u.password", "u.is_active",
		"u.created_at", "u.updated_at", "u.deleted_at",
	).
		From(userTable + " u").
		Where("u.deleted_at IS NULL")
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilters := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"u.username": pat},
				sq.ILike{"u.fio": pat},
				sq.ILike{"u.email": pat},
			})
		}
		for field, raw := range filter.Filter {
			column, ok := userFieldMap[field]
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
		From(userTable + " u").
		Where("u.deleted_at IS NULL")).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета пользователей: %w", err)
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	listBuilder := applyFilters(r.baseSelect()).OrderBy("u.id ASC")
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

	var users []entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Дотягиваем роли одним запросом
	if len(users) > 0 {
		ids := make([]uint64, 0, len(users))
		index := make(map[uint64]int, len(users))
		for i, u := range users {
			ids = append(ids, u.ID)
			index[u.ID] = i
		}

		roleRows, err := r.storage.Query(ctx,
			`SELECT ur.user_id, ro.name
			 FROM user_roles ur JOIN roles ro ON ro.id = ur.role_id
			 WHERE ur.user_id = ANY($1)`, ids)
		if err != nil {
			return nil, 0, err
		}
		defer roleRows.Close()

		for roleRows.Next() {
			var userID uint64
			var roleName string
			if err := roleRows.Scan(&userID, &roleName); err != nil {
				return nil, 0, err
			}
			if i, ok := index[userID]; ok {
				users[i].Roles = append(users[i].Roles, roleName)
			}
		}
		if err := roleRows.Err(); err != nil {
			return nil, 0, err
		}
	}

	return users, total, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query, args, err := r.baseSelect().Where(sq.Eq{"u.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	user.Roles, err = r.GetUserRolesNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindUserByEmailOrLogin(ctx context.Context, login string) (*entities.User, error) {
	query, args, err := r.baseSelect().
		Where(sq.Or{sq.Eq{"u.email": login}, sq.Eq{"u.username": login}}).
		ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	user.Roles, err = r.GetUserRolesNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func insertUserRoles(ctx context.Context, q querier, userID uint64, roleIDs []uint64) error {
	for _, roleID := range roleIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, roleID); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User, roleIDs []uint64) (uint64, error) {
	var id uint64
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (username, fio, email, password, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		if err := tx.QueryRow(ctx, query,
			user.Username, user.Fio, user.Email, user.Password, user.IsActive,
		).Scan(&id); err != nil {
			return err
		}
		return insertUserRoles(ctx, tx, id, roleIDs)
	})
	if err != nil {
		r.logger.Error("Ошибка создания пользователя", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, user entities.User, roleIDs []uint64) error {
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		query := `
			UPDATE users
			SET username = $1, fio = $2, email = $3, is_active = $4, updated_at = $5
			WHERE id = $6 AND deleted_at IS NULL`
		result, err := tx.Exec(ctx, query,
			user.Username, user.Fio, user.Email, user.IsActive, time.Now(), id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		// roleIDs == nil означает "роли не трогаем"
		if roleIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
				return err
			}
			return insertUserRoles(ctx, tx, id, roleIDs)
		}
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		r.logger.Error("Ошибка обновления пользователя", zap.Uint64("id", id), zap.Error(err))
	}
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`,
		hashedPassword, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		r.logger.Error("Ошибка удаления пользователя", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetUserRolesNames(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT ro.name FROM user_roles ur JOIN roles ro ON ro.id = ur.role_id WHERE ur.user_id = $1 ORDER BY ro.name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *UserRepository) GetUserRoleIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT role_id FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowTo[uint64])
}
