// Package djmanager собирает HTTP-приложение: хранилище, кэш, сервисы и маршруты.
package djmanager

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/djmanager/internal/cache"
	"github.com/magabrotheeeer/djmanager/internal/config"
	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/jwt"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/services/auth"
	"github.com/magabrotheeeer/djmanager/internal/services/backup"
	"github.com/magabrotheeeer/djmanager/internal/services/clients"
	"github.com/magabrotheeeer/djmanager/internal/services/dashboard"
	"github.com/magabrotheeeer/djmanager/internal/services/events"
	"github.com/magabrotheeeer/djmanager/internal/services/users"
	"github.com/magabrotheeeer/djmanager/internal/storage"
)

// App HTTP-сервер со всеми зависимостями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	cfg     config.HTTPServer
	closers []io.Closer
}

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Auth      *auth.Service
	Events    *events.Service
	Clients   *clients.Service
	Users     *users.Service
	Dashboard *dashboard.Service
	Backup    *backup.Service
	Store     storage.Store
}

// New открывает хранилище и кэш, создаёт сервисы и HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	closers := []io.Closer{store}

	var backend cache.Backend = cache.Noop{}
	if cfg.Redis.Enabled {
		redisCache, err := cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		backend = redisCache
		closers = append(closers, redisCache)
	} else {
		logger.Info("redis disabled, dashboard cache is off")
	}

	svc := NewServices(store, cache.NewSummaries(backend, cfg.Redis.TTL), cfg, logger)

	if cfg.Bootstrap.Enabled {
		bootstrap(ctx, svc.Auth, cfg.Bootstrap, logger)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, cfg.RateLimit)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		cfg:     cfg.HTTPServer,
		closers: closers,
	}, nil
}

// NewServices создаёт сервисы поверх store и кэша сводок.
func NewServices(store storage.Store, summaries *cache.Summaries, cfg *config.Config, logger *slog.Logger) *Services {
	maker := jwt.NewJWTMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL)
	return &Services{
		Auth:      auth.NewService(store, maker, logger),
		Events:    events.NewService(store, summaries, logger),
		Clients:   clients.NewService(store, summaries, logger),
		Users:     users.NewService(store, logger),
		Dashboard: dashboard.NewService(store, summaries, logger, cfg.TimeLocation()),
		Backup:    backup.NewService(store, summaries, logger),
		Store:     store,
	}
}

func bootstrap(ctx context.Context, authService *auth.Service, cfg config.Bootstrap, logger *slog.Logger) {
	_, err := authService.Bootstrap(ctx, cfg.Username, cfg.Password)
	switch {
	case errors.Is(err, errs.ErrAlreadyInitialized):
		logger.Info("bootstrap skipped, administrator already exists")
	case err != nil:
		logger.Error("bootstrap failed", sl.Err(err))
	}
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close failed", sl.Err(err))
		}
	}
}
