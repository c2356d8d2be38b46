package model

import "time"

// Session половина рыночного дня: open объявляется первым, close - после него
type Session string

const (
	SessionOpen  Session = "open"
	SessionClose Session = "close"
)

func (s Session) Valid() bool {
	return s == SessionOpen || s == SessionClose
}

// DeclaredResult объявленный результат сессии
type DeclaredResult struct {
	ID         int64
	MarketID   string
	Date       time.Time
	Session    Session
	Number     string
	Main       int
	OperatorID int
	CreatedAt  time.Time
}

// OpenResult результат open-сессии, нужный для расчета close
type OpenResult struct {
	Number string `json:"number"`
	Main   int    `json:"main"`
}

// ValidMain main всегда одна цифра
func (o OpenResult) ValidMain() bool {
	return o.Main >= 0 && o.Main <= 9
}

// OpenResult возвращает open-часть результата для расчета close
func (r *DeclaredResult) OpenResult() *OpenResult {
	if r == nil {
		return nil
	}
	return &OpenResult{Number: r.Number, Main: r.Main}
}
