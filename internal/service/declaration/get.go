package declaration

import (
	"context"
	"time"

	"matka_backend/internal/model"
)

// GetResult объявленный результат сессии
func (s *serv) GetResult(ctx context.Context, marketID string, date time.Time, session model.Session) (*model.DeclaredResult, error) {
	if marketID == "" {
		return nil, ErrInvalidMarket
	}
	if !session.Valid() {
		return nil, ErrInvalidSession
	}

	res, err := s.resultRepo.GetResult(ctx, marketID, model.DayOf(date), session)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrResultNotFound
	}
	return res, nil
}
