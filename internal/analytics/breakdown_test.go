package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

func TestCategoryBreakdown(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	events := []models.Event{
		{
			Date: day(2024, time.June, 20), IncomeCategory: "Festival", AmountCharged: 1000,
			Expenses: []models.ExpenseItem{{Category: "Transporte", Amount: 100}, {Category: "Marketing", Amount: 50}},
		},
		{
			Date: day(2024, time.June, 1), IncomeCategory: "Boda", AmountCharged: 700,
			Expenses: []models.ExpenseItem{{Category: "Transporte", Amount: 40}},
		},
		{
			Date: day(2024, time.June, 2), IncomeCategory: "Festival", AmountCharged: 300,
		},
		{
			Date: day(2024, time.May, 31), IncomeCategory: "Otro", AmountCharged: 5000,
			Expenses: []models.ExpenseItem{{Category: "Alojamiento", Amount: 999}},
		},
	}

	got := CategoryBreakdown(events, now)

	assert.Equal(t, []CategoryAmount{
		{Category: "Festival", Amount: 1300},
		{Category: "Boda", Amount: 700},
	}, got.Income)
	assert.Equal(t, []CategoryAmount{
		{Category: "Transporte", Amount: 140},
		{Category: "Marketing", Amount: 50},
	}, got.Expenses)
}

func TestCategoryBreakdown_NoEventsThisMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	got := CategoryBreakdown([]models.Event{newEvent(day(2023, time.June, 15), 100, 10)}, now)

	assert.Empty(t, got.Income)
	assert.Empty(t, got.Expenses)
	assert.NotNil(t, got.Income)
}
