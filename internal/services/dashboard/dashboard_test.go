package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/djmanager/internal/cache"
	"github.com/magabrotheeeer/djmanager/internal/config"
	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/month"
	"github.com/magabrotheeeer/djmanager/internal/models"
	"github.com/magabrotheeeer/djmanager/internal/storage/memory"
)

var now = time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

// StoreMock: мок хранилища для проверки ошибок.
type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *StoreMock) ListClients(ctx context.Context, userID string) ([]models.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

func seededStore(t *testing.T) *memory.Storage {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.CreateClient(ctx, models.Client{ID: "c1", UserID: "u1", Name: "Ana"}))
	require.NoError(t, store.CreateEvent(ctx, models.Event{
		ID: "e1", UserID: "u1", Name: "Boda", ClientID: "c1", Date: day(time.January, 15),
		IncomeCategory: "Boda", AmountCharged: 100,
		Expenses: []models.ExpenseItem{{ID: "x", Category: "Transporte", Amount: 30}},
	}))
	require.NoError(t, store.CreateEvent(ctx, models.Event{
		ID: "e2", UserID: "u1", Name: "Club", ClientID: "c1", Date: day(time.January, 20),
		IncomeCategory: "Discoteca/Club", AmountCharged: 50,
	}))
	return store
}

func newRedisSummaries(t *testing.T) (*cache.Summaries, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	backend, err := cache.InitServer(context.Background(), config.RedisConnection{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return cache.NewSummaries(backend, time.Minute), mr
}

func TestService_Dashboard(t *testing.T) {
	summaries, mr := newRedisSummaries(t)
	store := seededStore(t)
	svc := NewService(store, summaries, newNoopLogger(), time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	summary, err := svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", summary.MonthKey)
	assert.Equal(t, int64(150), summary.Current.Income)
	assert.Equal(t, int64(30), summary.Current.Expense)
	assert.Equal(t, 2, summary.Current.Count)
	assert.Equal(t, int64(120), summary.NetProfit)
	assert.True(t, mr.Exists("dashboard:u1:2024-01"))

	// второй вызов берётся из кэша, даже если хранилище изменилось
	require.NoError(t, store.DeleteEvent(ctx, "u1", "e1"))
	cached, err := svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, summary.NetProfit, cached.NetProfit)

	require.NoError(t, summaries.InvalidateUser(ctx, "u1"))
	fresh, err := svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), fresh.NetProfit)
}

func TestService_DashboardWithoutCache(t *testing.T) {
	svc := NewService(seededStore(t), cache.NewSummaries(cache.Noop{}, 0), newNoopLogger(), time.UTC)
	svc.now = func() time.Time { return now }

	summary, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), summary.NetProfit)
	assert.Len(t, summary.Trend, 12)
}

func TestService_DashboardUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	svc := NewService(seededStore(t), cache.NewSummaries(cache.Noop{}, 0), newNoopLogger(), loc)
	svc.now = func() time.Time { return time.Date(2024, time.January, 31, 22, 0, 0, 0, time.UTC) }

	summary, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "2024-02", summary.MonthKey)
	assert.Equal(t, int64(120), summary.PreviousNetProfit)
}

func TestService_Report(t *testing.T) {
	svc := NewService(seededStore(t), cache.NewSummaries(cache.Noop{}, 0), newNoopLogger(), time.UTC)
	ctx := context.Background()

	report, err := svc.Report(ctx, "u1", day(time.January, 15), day(time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, report.EventCount)
	assert.Equal(t, int64(70), report.NetProfit)
	assert.Equal(t, "Ana", report.Lines[0].ClientName)

	_, err = svc.Report(ctx, "u1", day(time.February, 1), day(time.January, 1))
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestService_Calendar(t *testing.T) {
	svc := NewService(seededStore(t), cache.NewSummaries(cache.Noop{}, 0), newNoopLogger(), time.UTC)

	days, err := svc.Calendar(context.Background(), "u1", month.Month{Year: 2024, Month: time.January})
	require.NoError(t, err)
	require.Len(t, days, 31)
	assert.Len(t, days[14].Events, 1)
	assert.Len(t, days[19].Events, 1)

	_, err = svc.Calendar(context.Background(), "u1", month.Month{Year: 2024, Month: 13})
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestService_StoreFault(t *testing.T) {
	store := new(StoreMock)
	store.On("ListEvents", mock.Anything, "u1").Return(nil, errors.New("boom"))
	store.On("ListClients", mock.Anything, "u1").Return([]models.Client{}, nil).Maybe()
	svc := NewService(store, cache.NewSummaries(cache.Noop{}, 0), newNoopLogger(), time.UTC)

	_, err := svc.Report(context.Background(), "u1", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	_, err = svc.Dashboard(context.Background(), "u1")
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
}
