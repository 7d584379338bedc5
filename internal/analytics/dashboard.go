package analytics

import (
	"time"

	"github.com/magabrotheeeer/djmanager/internal/lib/month"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// DashboardSummary: всё, что нужно панели текущего месяца.
type DashboardSummary struct {
	MonthKey          string       `json:"month_key"`
	Current           Bucket       `json:"current"`
	Previous          Bucket       `json:"previous"`
	NetProfit         int64        `json:"net_profit"`
	PreviousNetProfit int64        `json:"previous_net_profit"`
	ProfitChange      float64      `json:"profit_change"`
	Trend             []TrendPoint `json:"trend"`
	Breakdown         Breakdown    `json:"breakdown"`
}

// Dashboard собирает сводку панели для момента now.
func Dashboard(events []models.Event, now time.Time) DashboardSummary {
	buckets := MonthlyBuckets(events)
	cur, prev := CurrentAndPrevious(buckets, now)
	return DashboardSummary{
		MonthKey:          month.Of(now).Key(),
		Current:           cur,
		Previous:          prev,
		NetProfit:         cur.NetProfit(),
		PreviousNetProfit: prev.NetProfit(),
		ProfitChange:      ProfitChange(cur.NetProfit(), prev.NetProfit()),
		Trend:             Trend(buckets, now),
		Breakdown:         CategoryBreakdown(events, now),
	}
}
