package analytics

import (
	"time"

	"github.com/magabrotheeeer/djmanager/internal/lib/month"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// CalendarEvent: мероприятие в ячейке календаря.
type CalendarEvent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	ClientName string `json:"client_name"`
	Profit     int64  `json:"profit"`
}

// CalendarDay: один день месяца с его мероприятиями.
type CalendarDay struct {
	Date    string          `json:"date"`
	Weekday time.Weekday    `json:"weekday"`
	Events  []CalendarEvent `json:"events"`
}

// DayKey возвращает ключ календарного дня в формате YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(models.DateLayout)
}

// EventsByDay группирует мероприятия по календарному дню, сохраняя порядок.
func EventsByDay(events []models.Event) map[string][]models.Event {
	byDay := make(map[string][]models.Event)
	for _, e := range events {
		key := DayKey(e.Date)
		byDay[key] = append(byDay[key], e)
	}
	return byDay
}

// CalendarMonth возвращает все дни месяца m с мероприятиями каждого дня.
func CalendarMonth(events []models.Event, clients []models.Client, m month.Month) []CalendarDay {
	names := clientNames(clients)
	byDay := EventsByDay(events)
	days := make([]CalendarDay, 0, m.Days())
	for d := 1; d <= m.Days(); d++ {
		date := time.Date(m.Year, m.Month, d, 0, 0, 0, 0, time.UTC)
		key := DayKey(date)
		cells := make([]CalendarEvent, 0, len(byDay[key]))
		for _, e := range byDay[key] {
			cells = append(cells, CalendarEvent{
				ID:         e.ID,
				Name:       e.Name,
				Location:   e.Location,
				ClientName: nameOrUnknown(names, e.ClientID),
				Profit:     e.Profit(),
			})
		}
		days = append(days, CalendarDay{Date: key, Weekday: date.Weekday(), Events: cells})
	}
	return days
}
