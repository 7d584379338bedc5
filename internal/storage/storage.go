// Package storage выбирает реализацию хранилища по конфигурации.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/djmanager/internal/config"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/migrations"
	"github.com/magabrotheeeer/djmanager/internal/models"
	"github.com/magabrotheeeer/djmanager/internal/storage/memory"
	"github.com/magabrotheeeer/djmanager/internal/storage/postgres"
)

// Store объединяет все операции хранилища, которые используют сервисы.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, user models.User) error

	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	GetEvent(ctx context.Context, userID, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) error
	UpdateEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, userID, id string) error

	ListClients(ctx context.Context, userID string) ([]models.Client, error)
	GetClient(ctx context.Context, userID, id string) (*models.Client, error)
	CreateClient(ctx context.Context, client models.Client) error
	UpdateClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, userID, id string) error

	ReplacePartition(ctx context.Context, userID string, events []models.Event, clients []models.Client) error

	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*memory.Storage)(nil)
	_ Store = (*postgres.Storage)(nil)
)

// Параметры ожидания готовности базы при старте.
const (
	connectAttempts = 10
	connectDelay    = 3 * time.Second
)

// Open создаёт хранилище. Для PostgreSQL дожидается доступности базы
// и применяет миграции.
func Open(ctx context.Context, cfg config.Storage, log *slog.Logger) (Store, error) {
	const op = "storage.Open"

	switch cfg.Driver {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data will be lost on restart")
		return memory.New(), nil
	case config.StoragePostgres:
		db, err := waitForDB(ctx, cfg.ConnectionString, log)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = migrations.Run(db.DB); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%s: unknown driver %q", op, cfg.Driver)
	}
}

func waitForDB(ctx context.Context, connString string, log *slog.Logger) (*postgres.Storage, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := postgres.New(ctx, connString)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warn("database not ready", slog.Int("attempt", attempt), sl.Err(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectDelay):
		}
	}
	return nil, fmt.Errorf("database not ready after %d attempts: %w", connectAttempts, lastErr)
}
