package analytics

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/djmanager/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var seq int

func newEvent(date time.Time, charged int64, expenses ...int64) models.Event {
	seq++
	e := models.Event{
		ID:             fmt.Sprintf("ev-%d", seq),
		Name:           fmt.Sprintf("Evento %d", seq),
		Date:           date,
		IncomeCategory: "Boda",
		AmountCharged:  charged,
	}
	for i, amount := range expenses {
		e.Expenses = append(e.Expenses, models.ExpenseItem{
			ID:       fmt.Sprintf("exp-%d-%d", seq, i),
			Category: "Transporte",
			Amount:   amount,
		})
	}
	return e
}
