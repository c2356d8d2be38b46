package converter

import (
	"fmt"
	"time"

	"matka_backend/internal/api/dto/result"
	"matka_backend/internal/model"
	"matka_backend/internal/service/payout"
)

// ParseDate разбирает дату рыночного дня в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return d, nil
}

func ToPreview(req result.PreviewRequest) (model.Preview, error) {
	res := model.Preview{
		Session: model.Session(req.Session),
		Number:  req.Number,
		Totals:  req.Totals,
	}

	if req.Open != nil {
		open, err := payout.NewOpenResult(req.Open.Number)
		if err != nil {
			return model.Preview{}, fmt.Errorf("open: %w", err)
		}
		if req.Open.Main != nil {
			open.Main = *req.Open.Main
		}
		res.Open = open
	}

	return res, nil
}

func ToDeclaration(marketID string, req result.DeclareRequest) (model.Declaration, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return model.Declaration{}, err
	}
	return model.Declaration{
		Market:  model.MarketRefFromID(marketID),
		Date:    date,
		Session: model.Session(req.Session),
		Number:  req.Number,
	}, nil
}

func ToBreakdownResponse(b model.PayoutBreakdown) result.BreakdownResponse {
	items := make([]result.PayoutItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = result.PayoutItem{
			GameType: string(it.GameType),
			Pattern:  it.Pattern,
			Staked:   it.Staked.String(),
			Rate:     it.Rate.String(),
			Amount:   it.Amount.String(),
		}
	}

	return result.BreakdownResponse{
		Session:      string(b.Session),
		ResultNumber: b.ResultNumber,
		ResultType:   string(b.ResultType),
		Total:        b.Total.String(),
		Partial:      b.Partial,
		Items:        items,
	}
}

func ToResultResponse(r model.DeclaredResult) result.ResultResponse {
	res := result.ResultResponse{
		ID:         r.ID,
		MarketID:   r.MarketID,
		Date:       r.Date.Format(time.DateOnly),
		Session:    string(r.Session),
		Number:     r.Number,
		Main:       r.Main,
		OperatorID: r.OperatorID,
	}
	if !r.CreatedAt.IsZero() {
		res.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return res
}

func ToSettlementResponse(s model.Settlement) result.SettlementResponse {
	return result.SettlementResponse{
		ID:          s.ID,
		Result:      ToResultResponse(s.Result),
		TotalStaked: s.TotalStaked.String(),
		Breakdown:   ToBreakdownResponse(s.Breakdown),
	}
}
