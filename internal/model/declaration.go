package model

import "time"

// Declaration запрос на объявление результата сессии
type Declaration struct {
	Market  MarketRef
	Date    time.Time
	Session Session
	Number  string
}

// Preview расчет выплат по переданным суммам без сохранения
type Preview struct {
	Session Session
	Number  string
	Open    *OpenResult
	Totals  AggregatedBetTotals
}

// DayOf дата без времени в UTC (рыночный день)
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
