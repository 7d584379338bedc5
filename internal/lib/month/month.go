// Package month содержит календарную арифметику по месяцам, которой
// пользуются агрегаты дашборда и отчёты.
package month

import (
	"fmt"
	"time"
)

// Month: календарный месяц года.
type Month struct {
	Year  int
	Month time.Month
}

// Of возвращает месяц, к которому относится момент t в его часовом поясе.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Key возвращает сортируемый ключ месяца в формате YYYY-MM.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Add сдвигает месяц на n месяцев вперёд (или назад при n < 0)
// с переходом через границу года.
func (m Month) Add(n int) Month {
	idx := m.Year*12 + int(m.Month) - 1 + n
	year := idx / 12
	mon := idx % 12
	if mon < 0 {
		mon += 12
		year--
	}
	return Month{Year: year, Month: time.Month(mon + 1)}
}

// Prev возвращает предыдущий месяц.
func (m Month) Prev() Month {
	return m.Add(-1)
}

// Days возвращает количество дней в месяце.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains сообщает, относится ли календарная дата t к месяцу.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

var shortNames = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// Label возвращает короткую подпись месяца на испанском, например "ene 24".
func (m Month) Label() string {
	return fmt.Sprintf("%s %02d", shortNames[m.Month-1], m.Year%100)
}
