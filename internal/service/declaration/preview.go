package declaration

import (
	"context"
	"errors"
	"fmt"

	"matka_backend/internal/config"
	"matka_backend/internal/model"
	"matka_backend/internal/service/payout"
)

// Preview считает выплаты по переданным суммам, ничего не сохраняя
func (s *serv) Preview(_ context.Context, req model.Preview) (*model.PayoutBreakdown, error) {
	if !req.Session.Valid() {
		return nil, ErrInvalidSession
	}
	if err := req.Totals.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTotals, err)
	}
	if req.Open != nil && !req.Open.ValidMain() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOpenMain, req.Open.Main)
	}

	// Open препятствий для предпросмотра не создает
	if req.Session == model.SessionOpen {
		return s.calc.ComputeForOpen(req.Number, &req.Totals)
	}

	res, err := s.calc.ComputeForClose(req.Number, req.Open, &req.Totals)
	if err != nil {
		if errors.Is(err, payout.ErrMissingOpenResult) && s.cfg.MissingOpenPolicy() == config.MissingOpenFallback {
			return res, nil
		}
		return nil, err
	}
	return res, nil
}
