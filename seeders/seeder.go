package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"cms-system/pkg/config"
)

// SeedCoreDictionaries наполняет справочники, не имеющие зависимостей.
func SeedCoreDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения базовых справочников...")

	if err := seedPermissions(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Прав (Permissions): %v", err)
	}
	log.Println("✅ Наполнение базовых справочников завершено!")
}

// SeedRolesAndAdmin настраивает роли, их связи и создаёт администратора.
func SeedRolesAndAdmin(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск настройки ролей и администратора...")

	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Ролей (Roles): %v", err)
	}
	if err := seedRolePermissions(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Связей Ролей и Прав: %v", err)
	}
	if err := SeedAdminUser(db, cfg); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}

	log.Println("✅ Настройка ролей и администратора завершена!")
}
