// Файл: internal/dto/claims_dto.go
package dto

// UserClaims хранит полную информацию о пользователе, которая будет доступна в контексте запроса.
type UserClaims struct {
	UserID      uint64
	Username    string
	Roles       []string // Имена ролей, например ["editor"]
	Permissions []string // Список кодов привилегий, например ["pages:create", "pages:publish"]
}

// HasPermission - прямая проверка по списку привилегий из контекста.
func (c *UserClaims) HasPermission(name string) bool {
	for _, p := range c.Permissions {
		if p == name {
			return true
		}
	}
	return false
}
