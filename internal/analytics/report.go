package analytics

import (
	"sort"
	"time"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

// TopN: размер рейтингов отчёта.
const TopN = 5

// UnknownClient подставляется вместо имени удалённого или неизвестного клиента.
const UnknownClient = "N/A"

// ClientFrequency: количество мероприятий клиента за период.
type ClientFrequency struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// EventProfit: прибыль одного мероприятия.
type EventProfit struct {
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Profit  int64  `json:"profit"`
}

// ReportLine: строка детализации отчёта.
type ReportLine struct {
	EventID       string    `json:"event_id"`
	Name          string    `json:"name"`
	Date          time.Time `json:"date"`
	ClientName    string    `json:"client_name"`
	AmountCharged int64     `json:"amount_charged"`
	TotalExpenses int64     `json:"total_expenses"`
	Profit        int64     `json:"profit"`
}

// Report: отчёт за период.
type Report struct {
	Start         time.Time         `json:"start"`
	End           time.Time         `json:"end"`
	EventCount    int               `json:"event_count"`
	TotalCharged  int64             `json:"total_charged"`
	TotalExpenses int64             `json:"total_expenses"`
	NetProfit     int64             `json:"net_profit"`
	TopClients    []ClientFrequency `json:"top_clients"`
	TopEvents     []EventProfit     `json:"top_events"`
	Lines         []ReportLine      `json:"lines"`
}

// BuildReport строит отчёт по мероприятиям, попадающим в интервал rng.
//
// Мероприятия периода упорядочиваются по возрастанию даты; рейтинги клиентов
// (по числу мероприятий) и мероприятий (по прибыли) при равенстве сохраняют
// этот порядок.
func BuildReport(events []models.Event, clients []models.Client, rng Range) Report {
	names := clientNames(clients)

	period := make([]models.Event, 0, len(events))
	for _, e := range events {
		if rng.Contains(e.Date) {
			period = append(period, e)
		}
	}
	sort.SliceStable(period, func(i, j int) bool {
		return period[i].Date.Before(period[j].Date)
	})

	report := Report{
		Start:      rng.Start,
		End:        rng.End,
		EventCount: len(period),
		Lines:      make([]ReportLine, 0, len(period)),
	}
	for _, e := range period {
		expenses := e.TotalExpenses()
		report.TotalCharged += e.AmountCharged
		report.TotalExpenses += expenses
		report.Lines = append(report.Lines, ReportLine{
			EventID:       e.ID,
			Name:          e.Name,
			Date:          e.Date,
			ClientName:    nameOrUnknown(names, e.ClientID),
			AmountCharged: e.AmountCharged,
			TotalExpenses: expenses,
			Profit:        e.AmountCharged - expenses,
		})
	}
	report.NetProfit = report.TotalCharged - report.TotalExpenses
	report.TopClients = topClients(period, names)
	report.TopEvents = topEvents(period)
	return report
}

func topClients(period []models.Event, names map[string]string) []ClientFrequency {
	var freq []ClientFrequency
	index := make(map[string]int)
	for _, e := range period {
		i, ok := index[e.ClientID]
		if !ok {
			i = len(freq)
			index[e.ClientID] = i
			freq = append(freq, ClientFrequency{
				ClientID: e.ClientID,
				Name:     nameOrUnknown(names, e.ClientID),
			})
		}
		freq[i].Count++
	}
	sort.SliceStable(freq, func(i, j int) bool {
		return freq[i].Count > freq[j].Count
	})
	return head(freq)
}

func topEvents(period []models.Event) []EventProfit {
	profits := make([]EventProfit, 0, len(period))
	for _, e := range period {
		profits = append(profits, EventProfit{EventID: e.ID, Name: e.Name, Profit: e.Profit()})
	}
	sort.SliceStable(profits, func(i, j int) bool {
		return profits[i].Profit > profits[j].Profit
	})
	return head(profits)
}

func head[T any](items []T) []T {
	if len(items) > TopN {
		items = items[:TopN]
	}
	if items == nil {
		return []T{}
	}
	return items
}

func nameOrUnknown(names map[string]string, clientID string) string {
	if name, ok := names[clientID]; ok {
		return name
	}
	return UnknownClient
}
