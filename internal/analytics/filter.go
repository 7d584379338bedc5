package analytics

import (
	"strings"
	"time"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Range: интервал календарных дат с границами по началу и концу суток.
// Нулевая граница означает отсутствие ограничения с этой стороны.
type Range struct {
	Start time.Time
	End   time.Time
}

// DayRange строит интервал [start 00:00:00, end 23:59:59.999999999].
// Нулевые start или end оставляют соответствующую сторону открытой.
func DayRange(start, end time.Time) Range {
	var r Range
	if !start.IsZero() {
		r.Start = models.DateOf(start)
	}
	if !end.IsZero() {
		r.End = models.DateOf(end).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return r
}

// Contains сообщает, попадает ли момент t в интервал включительно.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Filter: условия отбора мероприятий для списка.
type Filter struct {
	Range  Range
	Search string
}

// FilterEvents отбирает мероприятия по диапазону дат и по подстроке без учёта
// регистра в названии, имени клиента или месте проведения. Порядок сохраняется.
func FilterEvents(events []models.Event, clients []models.Client, f Filter) []models.Event {
	names := clientNames(clients)
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !f.Range.Contains(e.Date) {
			continue
		}
		if term != "" && !matches(e, names[e.ClientID], term) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e models.Event, clientName, term string) bool {
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(clientName), term) ||
		strings.Contains(strings.ToLower(e.Location), term)
}

func clientNames(clients []models.Client) map[string]string {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names
}
