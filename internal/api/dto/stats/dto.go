package stats

type Sample struct {
	Session string `json:"session"`
	Date    string `json:"date"`
	Staked  string `json:"staked"`
	Paid    string `json:"paid"`
}

type Alert struct {
	Timestamp   string `json:"timestamp"`
	WindowRatio string `json:"window_ratio"`
	Reason      string `json:"reason"`
}

type MarketStatsResponse struct {
	MarketID       string   `json:"market_id"`
	Declarations   int      `json:"declarations"`
	Partial        int      `json:"partial"`
	TotalStaked    string   `json:"total_staked"`
	TotalPaid      string   `json:"total_paid"`
	HouseProfit    string   `json:"house_profit"`
	PayoutRatio    string   `json:"payout_ratio"` // Процент выплат за все время
	WindowRatio    string   `json:"window_ratio"` // Процент выплат в окне последних расчетов
	WindowSize     int      `json:"window_size"`
	HighPayoutMode bool     `json:"high_payout_mode"`
	Window         []Sample `json:"window"`
	Alerts         []Alert  `json:"alerts"`
}
