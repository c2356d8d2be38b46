package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutItem одна составляющая выплаты
type PayoutItem struct {
	GameType GameType        `json:"gameType"`
	Pattern  string          `json:"pattern"`
	Staked   decimal.Decimal `json:"staked"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// PayoutBreakdown итог расчета выплат по объявленному результату
type PayoutBreakdown struct {
	Session      Session         `json:"session"`
	ResultNumber string          `json:"resultNumber"`
	ResultType   GameType        `json:"resultType"`
	Total        decimal.Decimal `json:"total"`
	Items        []PayoutItem    `json:"items"`
	// Partial - close посчитан без open результата (только база)
	Partial bool `json:"partial"`
}

// Add добавляет составляющую и пересчитывает итог
func (b *PayoutBreakdown) Add(item PayoutItem) {
	b.Items = append(b.Items, item)
	b.Total = b.Total.Add(item.Amount)
}

// ByGameType сумма выплат по типу ставки
func (b *PayoutBreakdown) ByGameType(g GameType) decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		if it.GameType == g {
			total = total.Add(it.Amount)
		}
	}
	return total
}

// Settlement сохраненный итог одного объявления
type Settlement struct {
	ID          int64
	Result      DeclaredResult
	Breakdown   PayoutBreakdown
	TotalStaked decimal.Decimal
	CreatedAt   time.Time
}
