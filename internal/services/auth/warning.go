package auth

import (
	"fmt"
	"math"
	"time"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Пороги предупреждений в днях.
const (
	UrgentDays = 2
	NoticeDays = 7
)

// SubscriptionWarning вычисляет уровень предупреждения об окончании подписки.
// Оставшееся время считается в дробных днях, в сообщении округляется вверх.
func SubscriptionWarning(activeUntil, now time.Time) models.SubscriptionWarning {
	days := activeUntil.Sub(now).Hours() / 24
	w := models.SubscriptionWarning{
		Level:         models.WarningNone,
		DaysRemaining: days,
		ActiveUntil:   activeUntil,
	}
	shown := int(math.Ceil(days))
	switch {
	case days <= 0:
		w.Level = models.WarningExpired
		w.Message = "Su suscripción ha expirado."
	case days <= UrgentDays:
		w.Level = models.WarningUrgent
		w.Message = fmt.Sprintf("¡Su suscripción vence en %d día(s)!", shown)
	case days <= NoticeDays:
		w.Level = models.WarningNotice
		w.Message = fmt.Sprintf("Su suscripción vence en %d días.", shown)
	}
	return w
}

// WarningFor возвращает состояние подписки учётной записи. У администратора
// подписка не отслеживается, уровень всегда none.
func WarningFor(user models.User, now time.Time) models.SubscriptionWarning {
	if user.IsAdmin() {
		return models.SubscriptionWarning{Level: models.WarningNone, ActiveUntil: user.ActiveUntil}
	}
	return SubscriptionWarning(user.ActiveUntil, now)
}
