package converter

import (
	"time"

	"matka_backend/internal/api/dto/stats"
	"matka_backend/internal/model"
)

func ToMarketStatsResponse(st model.MarketStats) stats.MarketStatsResponse {
	window := make([]stats.Sample, len(st.Window))
	for i, w := range st.Window {
		window[i] = stats.Sample{
			Session: string(w.Session),
			Date:    w.Date.Format(time.DateOnly),
			Staked:  w.Staked.String(),
			Paid:    w.Paid.String(),
		}
	}

	alerts := make([]stats.Alert, len(st.Alerts))
	for i, a := range st.Alerts {
		alerts[i] = stats.Alert{
			Timestamp:   a.Timestamp.UTC().Format(time.RFC3339),
			WindowRatio: a.WindowRatio.StringFixed(2),
			Reason:      a.Reason,
		}
	}

	return stats.MarketStatsResponse{
		MarketID:       st.MarketID,
		Declarations:   st.Declarations,
		Partial:        st.Partial,
		TotalStaked:    st.TotalStaked.String(),
		TotalPaid:      st.TotalPaid.String(),
		HouseProfit:    st.HouseProfit.String(),
		PayoutRatio:    st.PayoutRatio.StringFixed(2),
		WindowRatio:    st.WindowRatio.StringFixed(2),
		WindowSize:     st.WindowSize,
		HighPayoutMode: st.HighPayoutMode,
		Window:         window,
		Alerts:         alerts,
	}
}

func ToMarketStatsList(list []model.MarketStats) []stats.MarketStatsResponse {
	res := make([]stats.MarketStatsResponse, len(list))
	for i, st := range list {
		res[i] = ToMarketStatsResponse(st)
	}
	return res
}
