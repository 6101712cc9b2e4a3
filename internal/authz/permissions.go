package authz

// Имена привилегий. Формат "сущность:действие", как они лежат в таблице permissions.
const (
	Superuser = "superuser"

	PagesView    = "pages:view"
	PagesCreate  = "pages:create"
	PagesUpdate  = "pages:update"
	PagesDelete  = "pages:delete"
	PagesPublish = "pages:publish"

	BlocksView   = "blocks:view"
	BlocksCreate = "blocks:create"
	BlocksUpdate = "blocks:update"
	BlocksDelete = "blocks:delete"

	UsersView   = "users:view"
	UsersManage = "users:manage"

	RolesView   = "roles:view"
	RolesCreate = "roles:create"
	RolesUpdate = "roles:update"
	RolesDelete = "roles:delete"

	PermissionsView   = "permissions:view"
	PermissionsManage = "permissions:manage"

	ContentExport = "content:export"
)

// Имена ролей из сидера.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)
