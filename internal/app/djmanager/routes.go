package djmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/djmanager/internal/config"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/admin/usercreate"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/admin/userstats"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/admin/usertoggle"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/admin/userupdate"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/backup/export"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/backup/restore"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/catalog"
	clientcreate "github.com/magabrotheeeer/djmanager/internal/http/handlers/clients/create"
	clientlist "github.com/magabrotheeeer/djmanager/internal/http/handlers/clients/list"
	clientremove "github.com/magabrotheeeer/djmanager/internal/http/handlers/clients/remove"
	clientupdate "github.com/magabrotheeeer/djmanager/internal/http/handlers/clients/update"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/dashboard/calendar"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/dashboard/report"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/dashboard/summary"
	eventcreate "github.com/magabrotheeeer/djmanager/internal/http/handlers/events/create"
	eventlist "github.com/magabrotheeeer/djmanager/internal/http/handlers/events/list"
	eventremove "github.com/magabrotheeeer/djmanager/internal/http/handlers/events/remove"
	eventupdate "github.com/magabrotheeeer/djmanager/internal/http/handlers/events/update"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/health"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/me/password"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/me/profile"
	"github.com/magabrotheeeer/djmanager/internal/http/handlers/me/subscription"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/metrics"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services, limits config.RateLimit) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware,
	)

	limiter := middlewarectx.NewRateLimiter(limits.RPS, limits.Burst)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/catalog", catalog.New().ServeHTTP)
		r.Get("/health", health.New(logger, svc.Store).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(limiter.Middleware(logger))

			r.Get("/me", profile.New().ServeHTTP)
			r.Get("/me/subscription", subscription.New(logger, svc.Auth).ServeHTTP)
			r.Put("/me/password", password.New(logger, svc.Auth).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.PasswordChangeGate(logger))

				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireRole(models.RoleUser, logger))

					r.Get("/events", eventlist.New(logger, svc.Events).ServeHTTP)
					r.Post("/events", eventcreate.New(logger, svc.Events).ServeHTTP)
					r.Put("/events/{id}", eventupdate.New(logger, svc.Events).ServeHTTP)
					r.Delete("/events/{id}", eventremove.New(logger, svc.Events).ServeHTTP)

					r.Get("/clients", clientlist.New(logger, svc.Clients).ServeHTTP)
					r.Post("/clients", clientcreate.New(logger, svc.Clients).ServeHTTP)
					r.Put("/clients/{id}", clientupdate.New(logger, svc.Clients).ServeHTTP)
					r.Delete("/clients/{id}", clientremove.New(logger, svc.Clients).ServeHTTP)

					r.Get("/dashboard", summary.New(logger, svc.Dashboard).ServeHTTP)
					r.Get("/reports", report.New(logger, svc.Dashboard).ServeHTTP)
					r.Get("/calendar", calendar.New(logger, svc.Dashboard).ServeHTTP)

					r.Get("/backup", export.New(logger, svc.Backup).ServeHTTP)
					r.Post("/backup", restore.New(logger, svc.Backup).ServeHTTP)
				})

				r.Route("/admin", func(r chi.Router) {
					r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))

					r.Get("/users", userlist.New(logger, svc.Users).ServeHTTP)
					r.Post("/users", usercreate.New(logger, svc.Users).ServeHTTP)
					r.Patch("/users/{id}", userupdate.New(logger, svc.Users).ServeHTTP)
					r.Post("/users/{id}/toggle", usertoggle.New(logger, svc.Users).ServeHTTP)
					r.Get("/stats", userstats.New(logger, svc.Users).ServeHTTP)
				})
			})
		})
	})

	r.Handle("/metrics", metrics.Handler())
}
