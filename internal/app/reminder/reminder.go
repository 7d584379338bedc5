// Package reminder собирает приложение, которое периодически публикует
// предупреждения об окончании подписки в RabbitMQ.
package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/djmanager/internal/config"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/rabbitmq"
	reminderservice "github.com/magabrotheeeer/djmanager/internal/services/reminder"
	"github.com/magabrotheeeer/djmanager/internal/storage"
)

// App представляет приложение напоминаний.
type App struct {
	reminderService *reminderservice.Service
	store           storage.Store
	conn            *amqp.Connection
	ch              *amqp.Channel
	cfg             config.Reminder
	logger          *slog.Logger
}

// New подключается к RabbitMQ и хранилищу и создаёт сервис напоминаний.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	logger.Info("connected to RabbitMQ")

	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.ReminderQueues(cfg.RabbitMQ))
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	publisher := rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)

	return &App{
		reminderService: reminderservice.NewService(store, publisher, logger),
		store:           store,
		conn:            conn,
		ch:              ch,
		cfg:             cfg.Reminder,
		logger:          logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run проверяет подписки с заданным интервалом до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("reminder started",
		slog.Duration("interval", a.cfg.Interval),
		slog.Bool("run_on_start", a.cfg.RunOnStart),
	)
	a.reminderService.Run(ctx, a.cfg.Interval, a.cfg.RunOnStart)

	a.logger.Info("shutting down reminder service")
	closeResources(a.ch, a.conn, a.logger)
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
	return nil
}

// RunOnce выполняет одну проверку и освобождает ресурсы.
func (a *App) RunOnce(ctx context.Context) (int, error) {
	defer func() {
		closeResources(a.ch, a.conn, a.logger)
		_ = a.store.Close()
	}()
	return a.reminderService.RunOnce(ctx)
}
