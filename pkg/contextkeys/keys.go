package contextkeys

type contextKey string

const (
	UserIDKey     contextKey = "UserID"
	UserClaimsKey contextKey = "UserClaims"
)
