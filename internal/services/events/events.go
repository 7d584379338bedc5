// Package events реализует создание, изменение, удаление и выборку мероприятий
// пользователя с проверкой ссылок на клиентов.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/djmanager/internal/analytics"
	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Store описывает хранилище мероприятий и клиентов.
type Store interface {
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	GetEvent(ctx context.Context, userID, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) error
	UpdateEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, userID, id string) error
	ListClients(ctx context.Context, userID string) ([]models.Client, error)
	GetClient(ctx context.Context, userID, id string) (*models.Client, error)
}

// Invalidator сбрасывает закэшированные сводки пользователя.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// Service реализует операции над мероприятиями.
type Service struct {
	store Store
	cache Invalidator
	log   *slog.Logger
}

// NewService создаёт новый экземпляр Service.
func NewService(store Store, cache Invalidator, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// Save создаёт или обновляет мероприятие и возвращает сохранённую версию.
func (s *Service) Save(ctx context.Context, userID string, cmd models.EventCommand) (*models.Event, error) {
	const op = "events.Save"

	var (
		event  models.Event
		create bool
	)
	switch c := cmd.(type) {
	case models.CreateEvent:
		event = fromDraft(uuid.NewString(), userID, c.Event)
		create = true
	case models.UpdateEvent:
		if _, err := s.store.GetEvent(ctx, userID, c.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, storeErr(err))
		}
		event = fromDraft(c.ID, userID, c.Event)
	default:
		return nil, fmt.Errorf("%s: unknown command %T: %w", op, cmd, errs.ErrInvalid)
	}

	if event.ClientID == "" {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrClientRequired)
	}
	if _, err := s.store.GetClient(ctx, userID, event.ClientID); err != nil {
		return nil, fmt.Errorf("%s: client %s: %w", op, event.ClientID, storeErr(err))
	}

	var err error
	if create {
		err = s.store.CreateEvent(ctx, event)
	} else {
		err = s.store.UpdateEvent(ctx, event)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	s.invalidate(ctx, userID)
	return &event, nil
}

// Delete удаляет мероприятие пользователя.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	const op = "events.Delete"

	if err := s.store.DeleteEvent(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	s.invalidate(ctx, userID)
	return nil
}

// List возвращает мероприятия пользователя по убыванию даты,
// отфильтрованные по диапазону дат и строке поиска.
func (s *Service) List(ctx context.Context, userID string, filter analytics.Filter) ([]models.Event, error) {
	const op = "events.List"

	events, err := s.store.ListEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	if filter.Search == "" && filter.Range == (analytics.Range{}) {
		return events, nil
	}
	clients, err := s.store.ListClients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return analytics.FilterEvents(events, clients, filter), nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.log.Warn("failed to invalidate dashboard cache", slog.String("user_id", userID), sl.Err(err))
	}
}

func fromDraft(id, userID string, d models.EventDraft) models.Event {
	expenses := make([]models.ExpenseItem, 0, len(d.Expenses))
	for _, exp := range d.Expenses {
		if exp.ID == "" {
			exp.ID = uuid.NewString()
		}
		expenses = append(expenses, exp)
	}
	return models.Event{
		ID:             id,
		UserID:         userID,
		Name:           d.Name,
		Date:           models.DateOf(d.Date),
		Location:       d.Location,
		ClientID:       d.ClientID,
		IncomeCategory: d.IncomeCategory,
		AmountCharged:  d.AmountCharged,
		Expenses:       expenses,
		Notes:          d.Notes,
	}
}

func storeErr(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStoreUnavailable, err)
}
