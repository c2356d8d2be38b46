package settlement_stats_repo

import (
	"sort"
	"sync"
	"time"

	"matka_backend/internal/model"
	"matka_backend/pkg/logger"

	"github.com/shopspring/decimal"
)

const (
	// defaultWindowSize Размер окна последних расчетов для анализа
	defaultWindowSize = 60
	// minSamplesToCheck Сколько расчетов должно быть в окне, прежде чем проверять процент выплат
	minSamplesToCheck = 4
)

var (
	hundred = decimal.NewFromInt(100)
	// criticalPayoutRatio процент выплат в окне, при котором включается режим высоких выплат
	criticalPayoutRatio = decimal.NewFromInt(110)
	// normalPayoutRatio процент выплат в окне, при котором режим выключается
	normalPayoutRatio = decimal.NewFromInt(95)
)

// StatsRepo хранит статистику расчетов по рынкам в памяти
type StatsRepo struct {
	mtx        sync.RWMutex
	windowSize int
	markets    map[string]*model.MarketStats
}

// NewSettlementStatsRepository Конструктор репозитория статистики
func NewSettlementStatsRepository() *StatsRepo {
	return &StatsRepo{
		windowSize: defaultWindowSize,
		markets:    make(map[string]*model.MarketStats),
	}
}

// Record Обновление статистики рынка после расчета.
// Возвращает true, если в этом расчете включился режим высоких выплат
func (r *StatsRepo) Record(s *model.Settlement) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	marketID := s.Result.MarketID
	st, ok := r.markets[marketID]
	if !ok {
		st = &model.MarketStats{
			MarketID:    marketID,
			TotalStaked: decimal.Zero,
			TotalPaid:   decimal.Zero,
			HouseProfit: decimal.Zero,
			PayoutRatio: decimal.Zero,
			WindowRatio: decimal.Zero,
			WindowSize:  r.windowSize,
		}
		r.markets[marketID] = st
	}

	paid := s.Breakdown.Total
	st.Declarations++
	if s.Breakdown.Partial {
		st.Partial++
	}
	st.TotalStaked = st.TotalStaked.Add(s.TotalStaked)
	st.TotalPaid = st.TotalPaid.Add(paid)
	st.HouseProfit = st.TotalStaked.Sub(st.TotalPaid)
	st.PayoutRatio = ratio(st.TotalPaid, st.TotalStaked)

	// Добавляем расчет в окно и поддерживаем его размер
	st.Window = append(st.Window, model.SettlementSample{
		Session: s.Result.Session,
		Date:    s.Result.Date,
		Staked:  s.TotalStaked,
		Paid:    paid,
	})
	if len(st.Window) > st.WindowSize {
		st.Window = st.Window[1:]
	}

	windowStaked, windowPaid := decimal.Zero, decimal.Zero
	for _, w := range st.Window {
		windowStaked = windowStaked.Add(w.Staked)
		windowPaid = windowPaid.Add(w.Paid)
	}
	st.WindowRatio = ratio(windowPaid, windowStaked)

	return r.checkHighPayout(st)
}

// checkHighPayout включает режим, если процент выплат в окне выше критического,
// и выключает его, когда процент вернулся к норме
func (r *StatsRepo) checkHighPayout(st *model.MarketStats) bool {
	if len(st.Window) < minSamplesToCheck {
		return false
	}

	if st.WindowRatio.GreaterThan(criticalPayoutRatio) {
		if st.HighPayoutMode {
			return false
		}
		st.HighPayoutMode = true
		st.Alerts = append(st.Alerts, model.PayoutAlert{
			Timestamp:   time.Now(),
			WindowRatio: st.WindowRatio,
			Reason:      "window payout ratio above critical",
		})
		logger.Warn("high payout ratio",
			"market_id", st.MarketID,
			"window_ratio", st.WindowRatio.StringFixed(2),
			"house_profit", st.HouseProfit.String(),
		)
		return true
	}

	if st.HighPayoutMode && st.WindowRatio.LessThan(normalPayoutRatio) {
		st.HighPayoutMode = false
		logger.Info("payout ratio back to normal",
			"market_id", st.MarketID,
			"window_ratio", st.WindowRatio.StringFixed(2),
		)
	}
	return false
}

// MarketStats Копия статистики рынка
func (r *StatsRepo) MarketStats(marketID string) (model.MarketStats, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st, ok := r.markets[marketID]
	if !ok {
		return model.MarketStats{}, false
	}
	return copyStats(st), true
}

// AllStats Копии статистики всех рынков, отсортированные по id рынка
func (r *StatsRepo) AllStats() []model.MarketStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	res := make([]model.MarketStats, 0, len(r.markets))
	for _, st := range r.markets {
		res = append(res, copyStats(st))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].MarketID < res[j].MarketID })
	return res
}

func copyStats(st *model.MarketStats) model.MarketStats {
	c := *st
	c.Window = append([]model.SettlementSample(nil), st.Window...)
	c.Alerts = append([]model.PayoutAlert(nil), st.Alerts...)
	return c
}

func ratio(paid, staked decimal.Decimal) decimal.Decimal {
	if !staked.IsPositive() {
		return decimal.Zero
	}
	return paid.Div(staked).Mul(hundred)
}
