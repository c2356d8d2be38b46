package stats

import (
	"context"
	"errors"

	"matka_backend/internal/model"
	"matka_backend/internal/repository"
	"matka_backend/internal/service"
)

var ErrMarketNotFound = errors.New("no settlements for market")

type serv struct {
	statsRepo repository.SettlementStatsRepository
}

// NewStatsService Создать сервис статистики выплат
func NewStatsService(statsRepo repository.SettlementStatsRepository) service.StatsService {
	return &serv{statsRepo: statsRepo}
}

func (s *serv) MarketStats(_ context.Context, marketID string) (*model.MarketStats, error) {
	st, ok := s.statsRepo.MarketStats(marketID)
	if !ok {
		return nil, ErrMarketNotFound
	}
	return &st, nil
}

func (s *serv) AllStats(_ context.Context) []model.MarketStats {
	return s.statsRepo.AllStats()
}
