package declaration

import (
	"errors"

	"matka_backend/internal/config"
	"matka_backend/internal/events"
	"matka_backend/internal/repository"
	"matka_backend/internal/service"
	"matka_backend/internal/service/payout"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrInvalidSession  = errors.New("session must be open or close")
	ErrInvalidMarket   = errors.New("market id is required")
	ErrInvalidDate     = errors.New("result date is required")
	ErrInvalidTotals   = errors.New("invalid bet totals")
	ErrInvalidOpenMain = errors.New("open main must be a single digit")
	ErrNoOperator      = errors.New("operator id not found in context")
	ErrResultNotFound  = errors.New("result not found")
	ErrCloseDeclared   = errors.New("close result already declared for this day")
)

type serv struct {
	cfg            config.GameConfig
	calc           *payout.Calculator
	betRepo        repository.BetRepository
	resultRepo     repository.ResultRepository
	settlementRepo repository.SettlementRepository
	statsRepo      repository.SettlementStatsRepository
	emitter        events.Emitter
	txManager      trm.Manager
}

// NewDeclarationService Создать сервис объявления результатов
func NewDeclarationService(
	cfg config.GameConfig,
	betRepo repository.BetRepository,
	resultRepo repository.ResultRepository,
	settlementRepo repository.SettlementRepository,
	statsRepo repository.SettlementStatsRepository,
	emitter events.Emitter,
	txManager trm.Manager,
) service.DeclarationService {
	return &serv{
		cfg:            cfg,
		calc:           payout.NewCalculator(cfg.WinningRates(), cfg.PannaCatalogue()),
		betRepo:        betRepo,
		resultRepo:     resultRepo,
		settlementRepo: settlementRepo,
		statsRepo:      statsRepo,
		emitter:        emitter,
		txManager:      txManager,
	}
}
