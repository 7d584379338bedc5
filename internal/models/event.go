package models

import (
	"sort"
	"time"
)

// DateLayout: формат календарной даты мероприятия в запросах.
const DateLayout = "2006-01-02"

// ExpenseItem: отдельная статья расходов мероприятия.
type ExpenseItem struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// Event: оплачиваемое мероприятие.
// Date хранит календарную дату как полночь UTC.
type Event struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id,omitempty"`
	Name           string        `json:"name"`
	Date           time.Time     `json:"date"`
	Location       string        `json:"location"`
	ClientID       string        `json:"client_id"`
	IncomeCategory string        `json:"income_category"`
	AmountCharged  int64         `json:"amount_charged"`
	Expenses       []ExpenseItem `json:"expenses"`
	Notes          string        `json:"notes,omitempty"`
}

// TotalExpenses возвращает сумму всех статей расходов.
func (e Event) TotalExpenses() int64 {
	var total int64
	for _, exp := range e.Expenses {
		total += exp.Amount
	}
	return total
}

// Profit возвращает прибыль мероприятия. Может быть отрицательной.
func (e Event) Profit() int64 {
	return e.AmountCharged - e.TotalExpenses()
}

// EventDraft: данные мероприятия без идентификатора.
type EventDraft struct {
	Name           string
	Date           time.Time
	Location       string
	ClientID       string
	IncomeCategory string
	AmountCharged  int64
	Expenses       []ExpenseItem
	Notes          string
}

// EventCommand: создание или обновление мероприятия.
type EventCommand interface {
	isEventCommand()
}

// CreateEvent добавляет новое мероприятие.
type CreateEvent struct {
	Event EventDraft
}

// UpdateEvent заменяет данные существующего мероприятия.
type UpdateEvent struct {
	ID    string
	Event EventDraft
}

func (CreateEvent) isEventCommand() {}
func (UpdateEvent) isEventCommand() {}

// DummyExpense используется для приёма статьи расходов из JSON-запроса.
type DummyExpense struct {
	ID       string `json:"id"`
	Category string `json:"category" validate:"required,expense_category"`
	Amount   int64  `json:"amount" validate:"gte=0"`
}

// DummyEvent используется для приёма мероприятия из JSON-запроса.
// Дата приходит строкой в формате 2006-01-02.
type DummyEvent struct {
	Name           string         `json:"name" validate:"required"`
	Date           string         `json:"date" validate:"required"`
	Location       string         `json:"location"`
	ClientID       string         `json:"client_id"`
	IncomeCategory string         `json:"income_category" validate:"required,income_category"`
	AmountCharged  int64          `json:"amount_charged" validate:"gte=0"`
	Expenses       []DummyExpense `json:"expenses" validate:"dive"`
	Notes          string         `json:"notes"`
}

// Draft преобразует запрос в EventDraft, разбирая дату.
func (d DummyEvent) Draft() (EventDraft, error) {
	date, err := ParseDate(d.Date)
	if err != nil {
		return EventDraft{}, err
	}
	expenses := make([]ExpenseItem, 0, len(d.Expenses))
	for _, exp := range d.Expenses {
		expenses = append(expenses, ExpenseItem(exp))
	}
	return EventDraft{
		Name:           d.Name,
		Date:           date,
		Location:       d.Location,
		ClientID:       d.ClientID,
		IncomeCategory: d.IncomeCategory,
		AmountCharged:  d.AmountCharged,
		Expenses:       expenses,
		Notes:          d.Notes,
	}, nil
}

// ParseDate разбирает календарную дату в полночь UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOf возвращает календарную дату момента t (в его часовом поясе) как полночь UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortEventsByDateDesc упорядочивает мероприятия по убыванию даты.
// Мероприятия с одинаковой датой сохраняют взаимный порядок.
func SortEventsByDateDesc(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
}
