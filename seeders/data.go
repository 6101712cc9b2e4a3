package seeders

var permissionsData = []struct {
	Name        string
	Description string
}{
	// --- Общие права ---
	{Name: "superuser", Description: "Суперпользователь (полный доступ)"},

	// --- Страницы ---
	{Name: "pages:view", Description: "Просмотр страниц"},
	{Name: "pages:create", Description: "Создание страниц"},
	{Name: "pages:update", Description: "Обновление страниц"},
	{Name: "pages:delete", Description: "Удаление страниц"},
	{Name: "pages:publish", Description: "Публикация и снятие с публикации страниц"},

	// --- Блоки ---
	{Name: "blocks:view", Description: "Просмотр блоков"},
	{Name: "blocks:create", Description: "Создание блоков"},
	{Name: "blocks:update", Description: "Обновление блоков"},
	{Name: "blocks:delete", Description: "Удаление блоков"},

	// --- Пользователи ---
	{Name: "users:view", Description: "Просмотр пользователей"},
	{Name: "users:manage", Description: "Управление пользователями"},

	// --- Роли и Права ---
	{Name: "roles:view", Description: "Просмотр ролей"},
	{Name: "roles:create", Description: "Создание ролей"},
	{Name: "roles:update", Description: "Обновление ролей"},
	{Name: "roles:delete", Description: "Удаление ролей"},
	{Name: "permissions:view", Description: "Просмотр списка всех прав"},
	{Name: "permissions:manage", Description: "Управление правами и их привязкой к ролям"},

	// --- Экспорт ---
	{Name: "content:export", Description: "Выгрузка контента в xlsx"},
}

var rolesData = []struct {
	Name        string
	Description string
}{
	{Name: "admin", Description: "Администратор системы"},
	{Name: "editor", Description: "Редактор контента"},
	{Name: "viewer", Description: "Только просмотр"},
}

// getRolePermissionsMap - базовые связи ролей и прав.
// Сидер добавляет недостающие связи, существующие не трогает.
func getRolePermissionsMap() map[string][]string {
	return map[string][]string{
		"admin": {"superuser"},
		"editor": {
			"pages:view", "pages:create", "pages:update", "pages:delete", "pages:publish",
			"blocks:view", "blocks:create", "blocks:update", "blocks:delete",
			"content:export",
		},
		"viewer": {"pages:view", "blocks:view"},
	}
}
