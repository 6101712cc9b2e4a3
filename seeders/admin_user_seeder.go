package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cms-system/pkg/config"
	"cms-system/pkg/utils"
)

// SeedAdminUser создаёт администратора из конфига и привязывает к роли admin.
func SeedAdminUser(db *pgxpool.Pool, cfg *config.Config) error {
	ctx := context.Background()
	log.Println("  - Создание администратора...")

	if cfg.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD не задан, администратор не будет создан")
	}

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", cfg.Admin.Email).Scan(&userID)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования администратора: %w", err)
	}

	var roleID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM roles WHERE name = 'admin' LIMIT 1").Scan(&roleID); err != nil {
		return fmt.Errorf("не найдена роль 'admin', сначала запустите сидер ролей: %w", err)
	}

	hashedPassword, err := utils.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, fio, email, password, is_active)
			  VALUES ($1, $2, $3, $4, true) RETURNING id`
	if err := db.QueryRow(ctx, query,
		cfg.Admin.Username, "Администратор системы", cfg.Admin.Email, hashedPassword,
	).Scan(&userID); err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, roleID); err != nil {
		return fmt.Errorf("не удалось привязать роль admin: %w", err)
	}

	log.Printf("    - Администратор создан (id=%d, username=%s)", userID, cfg.Admin.Username)
	return nil
}
