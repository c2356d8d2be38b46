package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketStats накопленная статистика расчетов по рынку
type MarketStats struct {
	MarketID     string
	Declarations int
	Partial      int
	TotalStaked  decimal.Decimal
	TotalPaid    decimal.Decimal
	HouseProfit  decimal.Decimal
	PayoutRatio  decimal.Decimal // TotalPaid/TotalStaked*100

	Window      []SettlementSample
	WindowRatio decimal.Decimal
	WindowSize  int

	HighPayoutMode bool
	Alerts         []PayoutAlert
}

// SettlementSample один расчет в окне
type SettlementSample struct {
	Session Session
	Date    time.Time
	Staked  decimal.Decimal
	Paid    decimal.Decimal
}

// PayoutAlert запись о превышении допустимого процента выплат
type PayoutAlert struct {
	Timestamp   time.Time
	WindowRatio decimal.Decimal
	Reason      string
}
