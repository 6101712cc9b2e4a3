package main

import (
	"database/sql"
	"embed"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"cms-system/pkg/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	down := flag.Bool("down", false, "Откатить последнюю миграцию вместо применения новых")
	status := flag.Bool("status", false, "Показать статус миграций")
	flag.Parse()

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ Не удалось установить диалект goose: %v", err)
	}

	switch {
	case *status:
		err = goose.Status(db, "migrations")
	case *down:
		err = goose.Down(db, "migrations")
	default:
		err = goose.Up(db, "migrations")
	}
	if err != nil {
		log.Fatalf("❌ Ошибка выполнения миграций: %v", err)
	}
	log.Println("✅ Миграции выполнены успешно.")
}
