// Package models содержит доменные структуры приложения: пользователей,
// клиентов, мероприятия с расходами, а также вспомогательные типы для
// приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет учётную запись системы.
type User struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	PasswordHash       string    `json:"-"`
	Role               string    `json:"role"`
	ActiveUntil        time.Time `json:"active_until"`
	IsActive           bool      `json:"is_active"`
	SubscriptionTier   string    `json:"subscription_tier,omitempty"`
	LastPaymentAmount  *int64    `json:"last_payment_amount,omitempty"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

// IsAdmin сообщает, что пользователь имеет роль администратора.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserDraft: данные новой учётной записи, создаваемой администратором.
// Нулевые ActiveUntil и SubscriptionTier заменяются значениями по умолчанию.
type UserDraft struct {
	Username          string
	Password          string
	ActiveUntil       time.Time
	SubscriptionTier  string
	LastPaymentAmount *int64
}

// UserPatch описывает частичное обновление пользователя администратором.
// nil-поля не изменяются.
type UserPatch struct {
	ID                string
	Password          *string
	ActiveUntil       *time.Time
	IsActive          *bool
	SubscriptionTier  *string
	LastPaymentAmount *int64
}

// Apply переносит заданные поля патча на пользователя.
// Пароль не применяется: его хэширует сервис.
func (p UserPatch) Apply(u *User) {
	if p.ActiveUntil != nil {
		u.ActiveUntil = *p.ActiveUntil
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.SubscriptionTier != nil {
		u.SubscriptionTier = *p.SubscriptionTier
	}
	if p.LastPaymentAmount != nil {
		amount := *p.LastPaymentAmount
		u.LastPaymentAmount = &amount
	}
}

// DummyUser используется для приёма данных нового пользователя из JSON-запроса.
type DummyUser struct {
	Username          string `json:"username" validate:"required,min=3,max=50"`
	Password          string `json:"password" validate:"required,min=4"`
	ActiveUntil       string `json:"active_until" validate:"omitempty"` // 2006-01-02
	SubscriptionTier  string `json:"subscription_tier" validate:"omitempty,subscription_tier"`
	LastPaymentAmount *int64 `json:"last_payment_amount" validate:"omitempty,gte=0"`
}

// DummyUserPatch используется для приёма частичного обновления пользователя.
type DummyUserPatch struct {
	Password          *string `json:"password" validate:"omitempty,min=4"`
	ActiveUntil       *string `json:"active_until" validate:"omitempty"`
	IsActive          *bool   `json:"is_active"`
	SubscriptionTier  *string `json:"subscription_tier" validate:"omitempty,subscription_tier"`
	LastPaymentAmount *int64  `json:"last_payment_amount" validate:"omitempty,gte=0"`
}

// ParseActiveUntil разбирает дату окончания подписки. Подписка действует
// до конца указанного дня по UTC.
func ParseActiveUntil(s string) (time.Time, error) {
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.AddDate(0, 0, 1).Add(-time.Second), nil
}

// Draft преобразует запрос в UserDraft.
func (d DummyUser) Draft() (UserDraft, error) {
	draft := UserDraft{
		Username:          d.Username,
		Password:          d.Password,
		SubscriptionTier:  d.SubscriptionTier,
		LastPaymentAmount: d.LastPaymentAmount,
	}
	if d.ActiveUntil != "" {
		until, err := ParseActiveUntil(d.ActiveUntil)
		if err != nil {
			return UserDraft{}, err
		}
		draft.ActiveUntil = until
	}
	return draft, nil
}

// Patch преобразует запрос в UserPatch для пользователя id.
func (d DummyUserPatch) Patch(id string) (UserPatch, error) {
	patch := UserPatch{
		ID:                id,
		Password:          d.Password,
		IsActive:          d.IsActive,
		SubscriptionTier:  d.SubscriptionTier,
		LastPaymentAmount: d.LastPaymentAmount,
	}
	if d.ActiveUntil != nil {
		until, err := ParseActiveUntil(*d.ActiveUntil)
		if err != nil {
			return UserPatch{}, err
		}
		patch.ActiveUntil = &until
	}
	return patch, nil
}
