package models

// DummyReportFilter используется для приёма параметров отчёта из query-строки.
// Даты приходят строками в формате 2006-01-02.
type DummyReportFilter struct {
	StartDate string `validate:"required"`
	EndDate   string `validate:"required"`
}

// DummyListFilter используется для приёма фильтра списка мероприятий.
// Все поля необязательны.
type DummyListFilter struct {
	StartDate string
	EndDate   string
	Search    string
}
