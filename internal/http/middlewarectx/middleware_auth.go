// Package middlewarectx содержит HTTP middleware для проверки сессии,
// роли и ограничения частоты запросов.
//
// JWTMiddleware проверяет JWT в заголовке Authorization, затем заново
// проверяет состояние учётной записи и кладёт её в контекст.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/jwt"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Service описывает проверку токена и состояния учётной записи.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error)
	CheckAccess(ctx context.Context, userID string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Отключённая учётная запись или истёкшая подписка дают 403 даже при
// действующем токене, так что решение администратора применяется сразу.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				response.Abort(w, r, http.StatusUnauthorized, "Falta el token de acceso.")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
				return
			}

			user, err := authService.CheckAccess(r.Context(), claims.UserID)
			switch {
			case errors.Is(err, errs.ErrNotFound):
				log.Warn("token user not found", slog.String("user_id", claims.UserID))
				response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
				return
			case err != nil:
				status, _ := response.FromError(err)
				if status == http.StatusInternalServerError {
					log.Error("failed to check access", sl.Err(err))
				} else {
					log.Info("access denied", slog.String("user_id", claims.UserID), sl.Err(err))
				}
				response.Fail(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
