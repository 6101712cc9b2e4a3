package authz

// Claims - требования маршрута, задаются один раз при регистрации роута и
// дальше не изменяются. Пустое измерение означает "без ограничений".
type Claims struct {
	Roles       []string
	Permissions []string
	Users       []string
}

// HasConstraints сообщает, накладывает ли конфигурация хоть какие-то ограничения
// сверх аутентификации.
func (c Claims) HasConstraints() bool {
	return len(c.Roles) > 0 || len(c.Permissions) > 0 || len(c.Users) > 0
}
