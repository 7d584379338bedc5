// Package clients реализует управление клиентами пользователя.
// Клиента нельзя удалить, пока на него ссылается хотя бы одно мероприятие.
package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Store описывает хранилище клиентов и мероприятий.
type Store interface {
	ListClients(ctx context.Context, userID string) ([]models.Client, error)
	GetClient(ctx context.Context, userID, id string) (*models.Client, error)
	CreateClient(ctx context.Context, client models.Client) error
	UpdateClient(ctx context.Context, client models.Client) error
	DeleteClient(ctx context.Context, userID, id string) error
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
}

// Invalidator сбрасывает закэшированные сводки пользователя.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// Service реализует операции над клиентами.
type Service struct {
	store Store
	cache Invalidator
	log   *slog.Logger
}

// NewService создаёт новый экземпляр Service.
func NewService(store Store, cache Invalidator, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// Save создаёт или обновляет клиента.
func (s *Service) Save(ctx context.Context, userID string, cmd models.ClientCommand) (*models.Client, error) {
	const op = "clients.Save"

	var (
		client models.Client
		err    error
	)
	switch c := cmd.(type) {
	case models.CreateClient:
		client = fromDraft(uuid.NewString(), userID, c.Client)
		if err = validate(client); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		err = s.store.CreateClient(ctx, client)
	case models.UpdateClient:
		client = fromDraft(c.ID, userID, c.Client)
		if err = validate(client); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		err = s.store.UpdateClient(ctx, client)
	default:
		return nil, fmt.Errorf("%s: unknown command %T: %w", op, cmd, errs.ErrInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	// имя клиента входит в отчёты и календарь
	s.invalidate(ctx, userID)
	return &client, nil
}

// Delete удаляет клиента, если на него не ссылается ни одно мероприятие.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	const op = "clients.Delete"

	events, err := s.store.ListEvents(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	for _, e := range events {
		if e.ClientID == id {
			return fmt.Errorf("%s: %w", op, errs.ErrClientInUse)
		}
	}
	if err = s.store.DeleteClient(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	s.invalidate(ctx, userID)
	return nil
}

// List возвращает клиентов пользователя.
func (s *Service) List(ctx context.Context, userID string) ([]models.Client, error) {
	const op = "clients.List"

	clients, err := s.store.ListClients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return clients, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.log.Warn("failed to invalidate dashboard cache", slog.String("user_id", userID), sl.Err(err))
	}
}

func validate(c models.Client) error {
	if c.Name == "" {
		return fmt.Errorf("client name is required: %w", errs.ErrInvalid)
	}
	return nil
}

func fromDraft(id, userID string, d models.ClientDraft) models.Client {
	return models.Client{
		ID:     id,
		UserID: userID,
		Name:   strings.TrimSpace(d.Name),
		Phone:  strings.TrimSpace(d.Phone),
		Email:  strings.TrimSpace(d.Email),
	}
}

func storeErr(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStoreUnavailable, err)
}
