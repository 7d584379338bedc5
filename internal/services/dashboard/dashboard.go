// Package dashboard собирает сводки, отчёты и календарь пользователя
// поверх чистых функций пакета analytics.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/djmanager/internal/analytics"
	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/month"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/metrics"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Store описывает чтение раздела пользователя.
type Store interface {
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	ListClients(ctx context.Context, userID string) ([]models.Client, error)
}

// Cache хранит вычисленные сводки по месяцам.
type Cache interface {
	Get(ctx context.Context, userID, monthKey string, result any) (bool, error)
	Set(ctx context.Context, userID, monthKey string, value any) error
}

// Service строит сводки пользователя.
type Service struct {
	store Store
	cache Cache
	log   *slog.Logger
	loc   *time.Location
	now   func() time.Time
}

// NewService создаёт новый экземпляр Service. loc: часовой пояс,
// в котором определяется текущий месяц.
func NewService(store Store, cache Cache, log *slog.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, cache: cache, log: log, loc: loc, now: time.Now}
}

// Dashboard возвращает сводку за текущий месяц. Кэш используется по
// возможности: ошибки кэша только логируются.
func (s *Service) Dashboard(ctx context.Context, userID string) (analytics.DashboardSummary, error) {
	const op = "dashboard.Dashboard"
	log := s.log.With(sl.Op(op), slog.String("user_id", userID))

	now := s.now().In(s.loc)
	key := month.Of(now).Key()

	var summary analytics.DashboardSummary
	found, err := s.cache.Get(ctx, userID, key, &summary)
	if err != nil {
		log.Warn("failed to read dashboard cache", sl.Err(err))
	}
	metrics.CacheLookup(found)
	if found {
		return summary, nil
	}

	events, err := s.store.ListEvents(ctx, userID)
	if err != nil {
		return analytics.DashboardSummary{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	summary = analytics.Dashboard(events, now)

	if err = s.cache.Set(ctx, userID, key, summary); err != nil {
		log.Warn("failed to write dashboard cache", sl.Err(err))
	}
	return summary, nil
}

// Report строит отчёт за период [start, end] включительно по календарным дням.
func (s *Service) Report(ctx context.Context, userID string, start, end time.Time) (analytics.Report, error) {
	const op = "dashboard.Report"

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return analytics.Report{}, fmt.Errorf("%s: end date before start date: %w", op, errs.ErrInvalid)
	}
	events, clients, err := s.load(ctx, userID)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("%s: %w", op, err)
	}
	return analytics.BuildReport(events, clients, analytics.DayRange(start, end)), nil
}

// Calendar возвращает дни месяца m с мероприятиями.
func (s *Service) Calendar(ctx context.Context, userID string, m month.Month) ([]analytics.CalendarDay, error) {
	const op = "dashboard.Calendar"

	if m.Month < time.January || m.Month > time.December {
		return nil, fmt.Errorf("%s: month %d: %w", op, m.Month, errs.ErrInvalid)
	}
	events, clients, err := s.load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return analytics.CalendarMonth(events, clients, m), nil
}

// CurrentMonth возвращает текущий месяц в часовом поясе сервиса.
func (s *Service) CurrentMonth() month.Month {
	return month.Of(s.now().In(s.loc))
}

// load читает мероприятия и клиентов пользователя параллельно.
func (s *Service) load(ctx context.Context, userID string) ([]models.Event, []models.Client, error) {
	var (
		events  []models.Event
		clients []models.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.store.ListEvents(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = s.store.ListClients(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, storeErr(err)
	}
	return events, clients, nil
}

func storeErr(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStoreUnavailable, err)
}
