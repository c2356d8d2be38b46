package bet_repo

import (
	"context"
	"fmt"

	"matka_backend/internal/model"
	"matka_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	table       = "bets"
	colMarketID = "market_id"
	colBetDate  = "bet_date"
	colSession  = "session"
	colGameType = "game_type"
	colPattern  = "pattern"
	colAmount   = "amount"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewBetRepository(dbc *pgxpool.Pool) repository.BetRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// AggregateTotals - суммы ставок сессии, сгруппированные по типу ставки и паттерну
func (r *repo) AggregateTotals(ctx context.Context, filter repository.BetFilter) (*model.AggregatedBetTotals, error) {
	sqlStr, args, err := aggregateQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := &model.AggregatedBetTotals{}
	for rows.Next() {
		var (
			gameType string
			pattern  string
			rawSum   string
		)
		if err := rows.Scan(&gameType, &pattern, &rawSum); err != nil {
			return nil, err
		}

		amount, err := decimal.NewFromString(rawSum)
		if err != nil {
			return nil, fmt.Errorf("bet sum %q for %s/%s: %w", rawSum, gameType, pattern, err)
		}

		// Неизвестные типы ставок пропускаем, это не наши бакеты
		totals.Add(model.GameType(gameType), pattern, amount)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

func aggregateQuery(filter repository.BetFilter) sq.SelectBuilder {
	return sq.Select(colGameType, colPattern, "SUM("+colAmount+")::text").
		From(table).
		Where(sq.Eq{
			colMarketID: filter.MarketID,
			colBetDate:  filter.Date,
			colSession:  string(filter.Session),
		}).
		GroupBy(colGameType, colPattern).
		PlaceholderFormat(sq.Dollar)
}
