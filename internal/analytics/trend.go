package analytics

import (
	"time"

	"github.com/magabrotheeeer/djmanager/internal/lib/month"
)

// TrendMonths: длина ряда динамики прибыли.
const TrendMonths = 12

// TrendPoint: чистая прибыль за один месяц ряда.
type TrendPoint struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	NetProfit int64  `json:"net_profit"`
}

// Trend возвращает прибыль за последние 12 месяцев, включая текущий,
// от самого раннего к текущему.
func Trend(buckets Buckets, now time.Time) []TrendPoint {
	current := month.Of(now)
	points := make([]TrendPoint, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		m := current.Add(-i)
		points = append(points, TrendPoint{
			Key:       m.Key(),
			Label:     m.Label(),
			NetProfit: buckets.Get(m).NetProfit(),
		})
	}
	return points
}
