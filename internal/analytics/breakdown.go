package analytics

import (
	"time"

	"github.com/magabrotheeeer/djmanager/internal/lib/month"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// CategoryAmount: сумма по одной категории.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// Breakdown: разбивка доходов и расходов месяца по категориям.
type Breakdown struct {
	Income   []CategoryAmount `json:"income"`
	Expenses []CategoryAmount `json:"expenses"`
}

// CategoryBreakdown считает доходы по категории дохода и расходы по категории
// статьи для мероприятий текущего месяца now. Категории идут в порядке
// первого появления.
func CategoryBreakdown(events []models.Event, now time.Time) Breakdown {
	current := month.Of(now)
	var income, expenses categorySums
	for _, e := range events {
		if !current.Contains(e.Date) {
			continue
		}
		income.add(e.IncomeCategory, e.AmountCharged)
		for _, exp := range e.Expenses {
			expenses.add(exp.Category, exp.Amount)
		}
	}
	return Breakdown{
		Income:   income.list(),
		Expenses: expenses.list(),
	}
}

type categorySums struct {
	index map[string]int
	items []CategoryAmount
}

func (c *categorySums) add(category string, amount int64) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[category]
	if !ok {
		i = len(c.items)
		c.index[category] = i
		c.items = append(c.items, CategoryAmount{Category: category})
	}
	c.items[i].Amount += amount
}

func (c *categorySums) list() []CategoryAmount {
	if c.items == nil {
		return []CategoryAmount{}
	}
	return c.items
}
