package repository

import (
	"context"
	"errors"
	"time"

	"matka_backend/internal/model"
)

// ErrAlreadyDeclared результат сессии уже объявлен
var ErrAlreadyDeclared = errors.New("result already declared")

// BetFilter выборка ставок одного рынка за день и сессию
type BetFilter struct {
	MarketID string
	Date     time.Time
	Session  model.Session
}

type BetRepository interface {
	AggregateTotals(ctx context.Context, filter BetFilter) (*model.AggregatedBetTotals, error)
}

type ResultRepository interface {
	// GetResult возвращает nil, nil если результата нет
	GetResult(ctx context.Context, marketID string, date time.Time, session model.Session) (*model.DeclaredResult, error)
	SaveResult(ctx context.Context, result *model.DeclaredResult) error
}

type SettlementRepository interface {
	SaveSettlement(ctx context.Context, settlement *model.Settlement) error
}

type SettlementStatsRepository interface {
	Record(settlement *model.Settlement) bool
	MarketStats(marketID string) (model.MarketStats, bool)
	AllStats() []model.MarketStats
}
