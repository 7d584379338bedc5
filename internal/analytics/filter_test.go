package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

func TestFilterEvents(t *testing.T) {
	clients := []models.Client{{ID: "c1", Name: "María López"}}
	events := []models.Event{
		{ID: "1", Name: "Boda en la playa", Location: "Cádiz", Date: day(2024, time.May, 20)},
		{ID: "2", Name: "Cumpleaños", Location: "Madrid", ClientID: "c1", Date: day(2024, time.May, 10)},
		{ID: "3", Name: "Festival", Location: "Playa de Gandía", Date: day(2024, time.April, 1)},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"1", "2", "3"}},
		{name: "by name, case insensitive", filter: Filter{Search: "BODA"}, want: []string{"1"}},
		{name: "by client name", filter: Filter{Search: "lópez"}, want: []string{"2"}},
		{name: "by location", filter: Filter{Search: "playa"}, want: []string{"1", "3"}},
		{name: "surrounding spaces ignored", filter: Filter{Search: "  madrid "}, want: []string{"2"}},
		{
			name:   "date range",
			filter: Filter{Range: DayRange(day(2024, time.May, 1), day(2024, time.May, 31))},
			want:   []string{"1", "2"},
		},
		{
			name:   "range and search",
			filter: Filter{Range: DayRange(day(2024, time.May, 1), time.Time{}), Search: "playa"},
			want:   []string{"1"},
		},
		{name: "nothing matches", filter: Filter{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(events, clients, tt.filter)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
