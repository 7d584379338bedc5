// Package reminder периодически проверяет подписки и публикует напоминания.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/metrics"
	"github.com/magabrotheeeer/djmanager/internal/models"
	"github.com/magabrotheeeer/djmanager/internal/services/auth"
)

// UserLister возвращает всех пользователей.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Publisher отправляет сообщение в очередь уведомлений.
type Publisher interface {
	Publish(ctx context.Context, message any) error
}

// Service ищет подписки, которые скоро закончатся.
type Service struct {
	users     UserLister
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewService создаёт новый экземпляр Service.
func NewService(users UserLister, publisher Publisher, log *slog.Logger) *Service {
	return &Service{users: users, publisher: publisher, log: log, now: time.Now}
}

// Due возвращает напоминания для активных пользователей с ролью user,
// у которых уровень предупреждения отличен от none.
func Due(users []models.User, now time.Time) []models.ReminderMessage {
	var out []models.ReminderMessage
	for _, u := range users {
		if u.Role != models.RoleUser || !u.IsActive {
			continue
		}
		w := auth.SubscriptionWarning(u.ActiveUntil, now)
		if w.Level == models.WarningNone {
			continue
		}
		out = append(out, models.ReminderMessage{
			UserID:        u.ID,
			Username:      u.Username,
			Level:         w.Level,
			DaysRemaining: w.DaysRemaining,
			Message:       w.Message,
			ActiveUntil:   w.ActiveUntil,
		})
	}
	return out
}

// RunOnce выполняет одну проверку и возвращает число опубликованных сообщений.
// Ошибка публикации одного сообщения не прерывает обработку остальных.
func (s *Service) RunOnce(ctx context.Context) (int, error) {
	const op = "reminder.RunOnce"
	log := s.log.With(sl.Op(op))

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	messages := Due(users, s.now())
	if len(messages) == 0 {
		log.Info("no expiring subscriptions found")
		return 0, nil
	}
	log.Info("found expiring subscriptions", slog.Int("count", len(messages)))

	published := 0
	for _, msg := range messages {
		if err := s.publisher.Publish(ctx, msg); err != nil {
			log.Error("failed to publish message", slog.String("user_id", msg.UserID), sl.Err(err))
			continue
		}
		metrics.ReminderPublished(msg.Level)
		published++
	}
	return published, nil
}

// Run запускает проверку каждые interval до отмены ctx.
func (s *Service) Run(ctx context.Context, interval time.Duration, runOnStart bool) {
	if runOnStart {
		s.tick(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder loop stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Service) tick(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("failed to check subscriptions", sl.Err(err))
	}
}
