package service

import (
	"context"
	"time"

	"matka_backend/internal/model"
)

type DeclarationService interface {
	Declare(ctx context.Context, req model.Declaration) (*model.Settlement, error)
	Preview(ctx context.Context, req model.Preview) (*model.PayoutBreakdown, error)
	GetResult(ctx context.Context, marketID string, date time.Time, session model.Session) (*model.DeclaredResult, error)
}

type StatsService interface {
	MarketStats(ctx context.Context, marketID string) (*model.MarketStats, error)
	AllStats(ctx context.Context) []model.MarketStats
}
