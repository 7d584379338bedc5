package models

import "time"

// Уровни предупреждения об окончании подписки.
const (
	WarningNone    = "none"
	WarningNotice  = "warning"
	WarningUrgent  = "urgent"
	WarningExpired = "expired"
)

// SubscriptionWarning описывает состояние подписки пользователя для отображения.
type SubscriptionWarning struct {
	Level         string    `json:"level"`
	DaysRemaining float64   `json:"days_remaining"`
	Message       string    `json:"message,omitempty"`
	ActiveUntil   time.Time `json:"active_until"`
}

// ReminderMessage: сообщение о скором окончании подписки для очереди уведомлений.
type ReminderMessage struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Level         string    `json:"level"`
	DaysRemaining float64   `json:"days_remaining"`
	Message       string    `json:"message"`
	ActiveUntil   time.Time `json:"active_until"`
}
