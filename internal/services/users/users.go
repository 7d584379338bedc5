// Package users реализует управление учётными записями администратором.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/djmanager/internal/analytics"
	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/password"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Store описывает хранилище пользователей.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, user models.User) error
}

// Service реализует операции администратора над пользователями.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService создаёт новый экземпляр Service.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	const op = "users.List"

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return users, nil
}

// Create создаёт учётную запись с ролью user. По умолчанию подписка действует
// месяц, тариф: первый из списка. Пользователь должен сменить выданный пароль.
func (s *Service) Create(ctx context.Context, draft models.UserDraft) (*models.User, error) {
	const op = "users.Create"

	username := strings.TrimSpace(draft.Username)
	if username == "" {
		return nil, fmt.Errorf("%s: username is required: %w", op, errs.ErrInvalid)
	}
	if err := password.Validate(draft.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	hash, err := password.GetHash(draft.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	user := models.User{
		ID:                 uuid.NewString(),
		Username:           username,
		PasswordHash:       hash,
		Role:               models.RoleUser,
		ActiveUntil:        draft.ActiveUntil,
		IsActive:           true,
		SubscriptionTier:   draft.SubscriptionTier,
		LastPaymentAmount:  draft.LastPaymentAmount,
		MustChangePassword: true,
		CreatedAt:          now,
	}
	if user.ActiveUntil.IsZero() {
		user.ActiveUntil = now.AddDate(0, 1, 0)
	}
	if user.SubscriptionTier == "" {
		user.SubscriptionTier = models.SubscriptionTiers[0]
	}

	if err = s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	s.log.Info("user created", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return &user, nil
}

// Update применяет частичное изменение. Новый пароль хэшируется, и
// пользователь должен будет сменить его при следующем входе.
func (s *Service) Update(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	const op = "users.Update"

	user, err := s.store.GetUser(ctx, patch.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	if patch.Password != nil {
		if err = password.Validate(*patch.Password); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		hash, err := password.GetHash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hash
		user.MustChangePassword = true
	}
	patch.Apply(user)

	if err = s.store.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return user, nil
}

// ToggleActive включает или отключает учётную запись targetID.
// Администратор не может отключить сам себя.
func (s *Service) ToggleActive(ctx context.Context, actorID, targetID string) (*models.User, error) {
	const op = "users.ToggleActive"

	if actorID == targetID {
		return nil, fmt.Errorf("%s: cannot toggle own account: %w", op, errs.ErrInvalid)
	}
	user, err := s.store.GetUser(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	active := !user.IsActive
	return s.Update(ctx, models.UserPatch{ID: targetID, IsActive: &active})
}

// Stats возвращает число всех, активных и неактивных учётных записей.
func (s *Service) Stats(ctx context.Context) (analytics.UserStats, error) {
	const op = "users.Stats"

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return analytics.UserStats{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return analytics.CountUsers(users, s.now()), nil
}

func storeErr(err error) error {
	if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrUsernameTaken) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStoreUnavailable, err)
}
