package result

import "matka_backend/internal/model"

type OpenResult struct {
	Number string `json:"number"`         // Панна или число open сессии
	Main   *int   `json:"main,omitempty"` // Если не передан, вычисляется из номера
}

type PreviewRequest struct {
	Session string                    `json:"session"` // open | close
	Number  string                    `json:"number"`  // Объявляемый номер
	Open    *OpenResult               `json:"open,omitempty"`
	Totals  model.AggregatedBetTotals `json:"totals"` // Суммы ставок по паттернам
}

type DeclareRequest struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Session string `json:"session"`
	Number  string `json:"number"`
}

type PayoutItem struct {
	GameType string `json:"game_type"`
	Pattern  string `json:"pattern"`
	Staked   string `json:"staked"`
	Rate     string `json:"rate"`
	Amount   string `json:"amount"`
}

type BreakdownResponse struct {
	Session      string       `json:"session"`
	ResultNumber string       `json:"result_number"`
	ResultType   string       `json:"result_type"`
	Total        string       `json:"total"`
	Partial      bool         `json:"partial"` // Close посчитан без open
	Items        []PayoutItem `json:"items"`
}

type ResultResponse struct {
	ID         int64  `json:"id"`
	MarketID   string `json:"market_id"`
	Date       string `json:"date"`
	Session    string `json:"session"`
	Number     string `json:"number"`
	Main       int    `json:"main"`
	OperatorID int    `json:"operator_id"`
	CreatedAt  string `json:"created_at"`
}

type SettlementResponse struct {
	ID          int64             `json:"id"`
	Result      ResultResponse    `json:"result"`
	TotalStaked string            `json:"total_staked"`
	Breakdown   BreakdownResponse `json:"breakdown"`
}
