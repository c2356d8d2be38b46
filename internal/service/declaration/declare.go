package declaration

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"matka_backend/internal/config"
	"matka_backend/internal/middleware"
	"matka_backend/internal/model"
	"matka_backend/internal/repository"
	"matka_backend/internal/service/payout"
	"matka_backend/pkg/digits"
	"matka_backend/pkg/logger"
)

// Declare объявляет результат сессии и считает выплаты.
// Close требует объявленного open; без него поведение зависит от missing_open_policy
func (s *serv) Declare(ctx context.Context, req model.Declaration) (*model.Settlement, error) {
	// Валидация запроса до открытия транзакции
	marketID := req.Market.MarketID()
	if marketID == "" {
		return nil, ErrInvalidMarket
	}
	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if !req.Session.Valid() {
		return nil, ErrInvalidSession
	}
	if _, err := s.calc.Classify(req.Number); err != nil {
		return nil, err
	}

	// Получаем ID оператора
	operatorID, ok := middleware.OperatorIDFromContext(ctx)
	if !ok {
		return nil, ErrNoOperator
	}

	date := model.DayOf(req.Date)
	log := logger.With("market_id", marketID, "date", date.Format("2006-01-02"), "session", req.Session)

	var settlement *model.Settlement

	// Начало транзакции: проверка, агрегация ставок, расчет и сохранение
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.resultRepo.GetResult(txCtx, marketID, date, req.Session)
		if err != nil {
			return fmt.Errorf("get result: %w", err)
		}
		if existing != nil {
			return repository.ErrAlreadyDeclared
		}

		// Open после close: close уже посчитан без open, джоди и сангамы не пересчитать
		if req.Session == model.SessionOpen {
			closeRes, err := s.resultRepo.GetResult(txCtx, marketID, date, model.SessionClose)
			if err != nil {
				return fmt.Errorf("get close result: %w", err)
			}
			if closeRes != nil {
				return ErrCloseDeclared
			}
		}

		// Для close нужен open результат того же дня
		var open *model.OpenResult
		if req.Session == model.SessionClose {
			openRes, err := s.resultRepo.GetResult(txCtx, marketID, date, model.SessionOpen)
			if err != nil {
				return fmt.Errorf("get open result: %w", err)
			}
			if openRes == nil && s.cfg.MissingOpenPolicy() == config.MissingOpenReject {
				return &payout.MissingOpenResultError{CloseNumber: req.Number}
			}
			open = openRes.OpenResult()
		}

		totals, err := s.betRepo.AggregateTotals(txCtx, repository.BetFilter{
			MarketID: marketID,
			Date:     date,
			Session:  req.Session,
		})
		if err != nil {
			return fmt.Errorf("aggregate bets: %w", err)
		}

		breakdown, err := s.compute(req.Session, req.Number, open, totals)
		if err != nil {
			if !errors.Is(err, payout.ErrMissingOpenResult) {
				return err
			}
			log.Warn("close declared without open result, base payout only", "number", req.Number)
		}

		value, _ := strconv.Atoi(req.Number)
		result := model.DeclaredResult{
			MarketID:   marketID,
			Date:       date,
			Session:    req.Session,
			Number:     req.Number,
			Main:       digits.MainValue(value),
			OperatorID: operatorID,
		}
		if err := s.resultRepo.SaveResult(txCtx, &result); err != nil {
			return err
		}

		settlement = &model.Settlement{
			Result:      result,
			Breakdown:   *breakdown,
			TotalStaked: totals.Total(),
		}
		if err := s.settlementRepo.SaveSettlement(txCtx, settlement); err != nil {
			return fmt.Errorf("save settlement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Статистика и событие для леджера после коммита
	s.statsRepo.Record(settlement)

	if err := s.emitter.EmitSettlement(ctx, settlement); err != nil {
		log.Error("emit settlement event failed", "settlement_id", settlement.ID, "err", err)
	}

	log.Info("result declared",
		"number", req.Number,
		"operator_id", operatorID,
		"total_staked", settlement.TotalStaked.String(),
		"total_payout", settlement.Breakdown.Total.String(),
		"partial", settlement.Breakdown.Partial,
	)

	return settlement, nil
}

// compute выбирает расчет под сессию
func (s *serv) compute(session model.Session, number string, open *model.OpenResult, totals *model.AggregatedBetTotals) (*model.PayoutBreakdown, error) {
	if session == model.SessionOpen {
		return s.calc.ComputeForOpen(number, totals)
	}
	return s.calc.ComputeForClose(number, open, totals)
}
