package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoContent создаёт стартовую страницу и пару блоков, чтобы пустая
// инсталляция не выглядела мёртвой. Автором назначается администратор.
func SeedDemoContent(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - Наполнение демо-контентом...")

	var authorID uint64
	err := db.QueryRow(ctx,
		`SELECT u.id FROM users u
		 JOIN user_roles ur ON ur.user_id = u.id
		 JOIN roles r ON r.id = ur.role_id
		 WHERE r.name = 'admin' LIMIT 1`).Scan(&authorID)
	if err != nil {
		return fmt.Errorf("не найден администратор для авторства демо-страниц: %w", err)
	}

	var pageID uint64
	err = db.QueryRow(ctx, "SELECT id FROM pages WHERE slug = 'home'").Scan(&pageID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = db.QueryRow(ctx,
			`INSERT INTO pages (title, slug, content, status, author_id, published_at)
			 VALUES ('Главная', 'home', '<h1>Добро пожаловать</h1>', 'published', $1, now())
			 RETURNING id`, authorID).Scan(&pageID)
		if err != nil {
			return fmt.Errorf("не удалось создать демо-страницу: %w", err)
		}
		log.Println("    - Создана страница 'home'")
	} else if err != nil {
		return err
	} else {
		log.Println("    - Страница 'home' уже существует. Пропускаем.")
	}

	blocks := []struct {
		Name    string
		Type    string
		Region  string
		Content string
	}{
		{Name: "Главное меню", Type: "menu", Region: "header", Content: `{"items":[{"title":"Главная","url":"/"}]}`},
		{Name: "Приветствие", Type: "text", Region: "content", Content: `{"text":"Система управления контентом запущена."}`},
	}

	for i, b := range blocks {
		_, err := db.Exec(ctx,
			`INSERT INTO blocks (name, type, region, position, content, page_id, is_active)
			 SELECT $1, $2, $3, $4, $5::jsonb, $6, true
			 WHERE NOT EXISTS (SELECT 1 FROM blocks WHERE name = $1)`,
			b.Name, b.Type, b.Region, i, b.Content, pageID)
		if err != nil {
			return fmt.Errorf("не удалось создать демо-блок '%s': %w", b.Name, err)
		}
	}

	return nil
}
