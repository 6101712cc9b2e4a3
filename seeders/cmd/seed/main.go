package main

import (
	"flag"
	"log"

	"cms-system/pkg/config"
	"cms-system/pkg/database/postgresql"
	"cms-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCore := flag.Bool("core", false, "Запустить наполнение справочника прав")
	runRoles := flag.Bool("roles", false, "Запустить создание ролей и администратора")
	runContent := flag.Bool("content", false, "Запустить наполнение демо-контентом")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -core -roles -content)")

	flag.Parse()

	if !*runCore && !*runRoles && !*runContent && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -core")
		log.Println("  go run ./seeders/cmd/seed/main.go -core -roles")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runCore {
		seeders.SeedCoreDictionaries(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runRoles {
		// Роли и админ зависят от справочника прав
		seeders.SeedRolesAndAdmin(dbPool, cfg)
		log.Println("======================================================")
	}

	if *runAll || *runContent {
		if err := seeders.SeedDemoContent(dbPool); err != nil {
			log.Fatalf("❌ Ошибка наполнения демо-контентом: %v", err)
		}
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
