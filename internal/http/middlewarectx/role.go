package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
)

// RequireRole пропускает только пользователей с ролью role.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ := r.Context().Value(Role).(string)
			if got != role {
				log.Warn("role denied", slog.String("want", role), slog.String("got", got))
				response.Abort(w, r, http.StatusForbidden, "No tiene permisos para esta sección.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PasswordChangeGate блокирует запросы, пока пользователь не сменит пароль.
func PasswordChangeGate(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFrom(r.Context())
			if !ok {
				response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
				return
			}
			if u.MustChangePassword {
				log.Info("password change required", slog.String("user_id", u.ID))
				response.Fail(w, r, errs.ErrPasswordChangeRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
