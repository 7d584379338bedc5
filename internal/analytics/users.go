package analytics

import (
	"time"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// UserStats: сводка по учётным записям для панели администратора.
type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// CountUsers считает активные учётные записи: включённые и с неистёкшей подпиской.
func CountUsers(users []models.User, now time.Time) UserStats {
	stats := UserStats{Total: len(users)}
	for _, u := range users {
		if u.IsActive && u.ActiveUntil.After(now) {
			stats.Active++
		}
	}
	stats.Inactive = stats.Total - stats.Active
	return stats
}
