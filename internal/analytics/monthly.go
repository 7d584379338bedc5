// Package analytics вычисляет финансовые агрегаты по мероприятиям пользователя:
// помесячные итоги, динамику прибыли, разбивку по категориям, отчёты за период.
//
// Все функции пакета чистые: они не изменяют входные данные, не выполняют
// ввод-вывод и для одинаковых аргументов возвращают одинаковый результат.
// Текущий момент всегда передаётся явно параметром now.
package analytics

import (
	"math"
	"time"

	"github.com/magabrotheeeer/djmanager/internal/lib/month"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Bucket: итоги за один календарный месяц.
type Bucket struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Count   int   `json:"count"`
}

// NetProfit возвращает чистую прибыль за месяц.
func (b Bucket) NetProfit() int64 {
	return b.Income - b.Expense
}

// Buckets: помесячные итоги по ключу YYYY-MM.
type Buckets map[string]Bucket

// Get возвращает итоги месяца; отсутствующий месяц даёт нулевые итоги.
func (b Buckets) Get(m month.Month) Bucket {
	return b[m.Key()]
}

// MonthKey возвращает ключ месяца календарной даты t.
func MonthKey(t time.Time) string {
	return month.Of(t).Key()
}

// MonthlyBuckets группирует мероприятия по месяцу даты.
func MonthlyBuckets(events []models.Event) Buckets {
	buckets := make(Buckets)
	for _, e := range events {
		key := MonthKey(e.Date)
		b := buckets[key]
		b.Income += e.AmountCharged
		b.Expense += e.TotalExpenses()
		b.Count++
		buckets[key] = b
	}
	return buckets
}

// CurrentAndPrevious возвращает итоги текущего месяца now и предшествующего ему.
func CurrentAndPrevious(buckets Buckets, now time.Time) (cur, prev Bucket) {
	m := month.Of(now)
	return buckets.Get(m), buckets.Get(m.Prev())
}

// ProfitChange возвращает изменение прибыли в процентах относительно прошлого месяца.
//
// При нулевой прибыли прошлого месяца результат равен 100, если текущая
// прибыль положительна, и 0 во всех остальных случаях.
func ProfitChange(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / math.Abs(float64(previous)) * 100
}
