package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID: ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// Role: ключ для роли пользователя в контексте
	Role Key = "role"
	// User: ключ для актуальной учётной записи в контексте
	User Key = "user"
)

// WithUser кладёт учётную запись и производные значения в контекст.
func WithUser(ctx context.Context, u *models.User) context.Context {
	ctx = context.WithValue(ctx, UserID, u.ID)
	ctx = context.WithValue(ctx, Role, u.Role)
	return context.WithValue(ctx, User, u)
}

// UserIDFrom возвращает идентификатор пользователя из контекста.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}

// UserFrom возвращает учётную запись из контекста.
func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(User).(*models.User)
	return u, ok && u != nil
}
