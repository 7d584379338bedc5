package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/jwt"
	"github.com/magabrotheeeer/djmanager/internal/lib/password"
	"github.com/magabrotheeeer/djmanager/internal/models"
	"github.com/magabrotheeeer/djmanager/internal/storage/memory"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*Service, *memory.Storage) {
	t.Helper()
	store := memory.New()
	svc := NewService(store, jwt.NewJWTMaker("secret", time.Hour), newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc, store
}

func addUser(t *testing.T, store *memory.Storage, u models.User, raw string) {
	t.Helper()
	hash, err := password.GetHash(raw)
	require.NoError(t, err)
	u.PasswordHash = hash
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
}

// UserStoreMock: мок хранилища пользователей.
type UserStoreMock struct {
	mock.Mock
}

func (m *UserStoreMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserStoreMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStoreMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStoreMock) CreateUser(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserStoreMock) UpdateUser(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestService_Authenticate(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, models.User{ID: "ok", Username: "ok", IsActive: true, ActiveUntil: now.Add(time.Hour)}, "pass")
	addUser(t, store, models.User{ID: "expired", Username: "expired", IsActive: true, ActiveUntil: now.Add(-time.Hour)}, "pass")
	addUser(t, store, models.User{ID: "disabled", Username: "disabled", IsActive: false, ActiveUntil: now.Add(-time.Hour)}, "pass")
	addUser(t, store, models.User{ID: "admin", Username: "boss", Role: models.RoleAdmin, IsActive: true, ActiveUntil: now.Add(-time.Minute)}, "pass")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "ok", password: "pass"},
		{name: "unknown username", username: "nobody", password: "pass", wantErr: errs.ErrInvalidCredentials},
		{name: "wrong password", username: "ok", password: "nope", wantErr: errs.ErrInvalidCredentials},
		{name: "username is case sensitive", username: "OK", password: "pass", wantErr: errs.ErrInvalidCredentials},
		{name: "expired subscription", username: "expired", password: "pass", wantErr: errs.ErrSubscriptionExpired},
		{name: "disabled takes precedence over expiry", username: "disabled", password: "pass", wantErr: errs.ErrAccountDisabled},
		{name: "admin expiry is not checked", username: "boss", password: "pass"},
		{name: "wrong password on disabled account", username: "disabled", password: "nope", wantErr: errs.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
		})
	}
}

func TestService_AuthenticateStoreFault(t *testing.T) {
	store := new(UserStoreMock)
	store.On("GetUserByUsername", mock.Anything, "dj").Return(nil, errors.New("connection refused")).Once()
	svc := NewService(store, jwt.NewJWTMaker("secret", time.Hour), newNoopLogger())

	_, err := svc.Authenticate(context.Background(), "dj", "pass")

	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, errs.ErrInvalidCredentials)
	store.AssertExpectations(t)
}

func TestService_BootstrapThenLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Bootstrap(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.MustChangePassword)
	assert.True(t, admin.ActiveUntil.After(now.AddDate(9, 0, 0)))

	token, user, err := svc.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.True(t, claims.MustChangePassword)

	_, err = svc.Bootstrap(ctx, "other", "secret")
	assert.ErrorIs(t, err, errs.ErrAlreadyInitialized)
}

func TestService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestService_ChangePassword(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addUser(t, store, models.User{ID: "u1", Username: "dj", IsActive: true, ActiveUntil: now.Add(time.Hour), MustChangePassword: true}, "old1")

	assert.ErrorIs(t, svc.ChangePassword(ctx, "u1", "abc"), errs.ErrWeakPassword)
	require.NoError(t, svc.ChangePassword(ctx, "u1", "nueva"))

	u, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, u.MustChangePassword)

	_, err = svc.Authenticate(ctx, "dj", "old1")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "dj", "nueva")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, "missing", "nueva"), errs.ErrNotFound)
}

func TestService_ResetPassword(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addUser(t, store, models.User{ID: "u1", Username: "dj", IsActive: true, ActiveUntil: now.Add(time.Hour)}, "old1")

	require.NoError(t, svc.ResetPassword(ctx, "dj", "temporal"))

	u, err := svc.Authenticate(ctx, "dj", "temporal")
	require.NoError(t, err)
	assert.True(t, u.MustChangePassword)
}

func TestService_CheckAccess(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	addUser(t, store, models.User{ID: "u1", Username: "dj", IsActive: true, ActiveUntil: now.Add(time.Hour)}, "pass")

	_, err := svc.CheckAccess(ctx, "u1")
	require.NoError(t, err)

	u, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, store.UpdateUser(ctx, *u))

	_, err = svc.CheckAccess(ctx, "u1")
	assert.ErrorIs(t, err, errs.ErrAccountDisabled)

	_, err = svc.CheckAccess(ctx, "ghost")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestService_Subscription(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, models.User{ID: "u1", Username: "dj", IsActive: true, ActiveUntil: now.Add(36 * time.Hour)}, "pass")

	w, err := svc.Subscription(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.WarningUrgent, w.Level)
	assert.Equal(t, "¡Su suscripción vence en 2 día(s)!", w.Message)

	addUser(t, store, models.User{ID: "a1", Username: "boss", Role: models.RoleAdmin, IsActive: true, ActiveUntil: now.Add(-time.Hour)}, "pass")
	w, err = svc.Subscription(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, models.WarningNone, w.Level)

	_, err = svc.CheckAccess(context.Background(), "a1")
	assert.NoError(t, err, "admin access does not depend on subscription")
}
