package cache

import (
	"context"
	"time"
)

// Backend: хранилище ключей: Redis (*Cache) или Noop.
type Backend interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Summaries кэширует сводки панели пользователя по месяцам.
// Ключ: dashboard:<userID>:<YYYY-MM>.
type Summaries struct {
	backend Backend
	ttl     time.Duration
}

// NewSummaries создаёт кэш сводок с временем жизни ttl.
func NewSummaries(backend Backend, ttl time.Duration) *Summaries {
	return &Summaries{backend: backend, ttl: ttl}
}

func userPrefix(userID string) string {
	return "dashboard:" + userID + ":"
}

// Get читает сводку пользователя за месяц monthKey.
func (s *Summaries) Get(ctx context.Context, userID, monthKey string, result any) (bool, error) {
	return s.backend.Get(ctx, userPrefix(userID)+monthKey, result)
}

// Set сохраняет сводку пользователя за месяц monthKey.
func (s *Summaries) Set(ctx context.Context, userID, monthKey string, value any) error {
	return s.backend.Set(ctx, userPrefix(userID)+monthKey, value, s.ttl)
}

// InvalidateUser удаляет все сводки пользователя.
func (s *Summaries) InvalidateUser(ctx context.Context, userID string) error {
	return s.backend.InvalidatePrefix(ctx, userPrefix(userID))
}
