package settlement_repo

import (
	"context"
	"errors"

	"matka_backend/internal/model"
	"matka_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "settlements"
	colID          = "id"
	colResultID    = "result_id"
	colResultType  = "result_type"
	colTotalPayout = "total_payout"
	colTotalStaked = "total_staked"
	colPartial     = "partial"
	colCreatedAt   = "created_at"

	itemsTable      = "settlement_items"
	colSettlementID = "settlement_id"
	colGameType     = "game_type"
	colPattern      = "pattern"
	colStaked       = "staked"
	colRate         = "rate"
	colAmount       = "amount"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSettlementRepository(dbc *pgxpool.Pool) repository.SettlementRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// SaveSettlement - сохраняет итог расчета и его составляющие.
// Результат должен быть уже сохранен (нужен Result.ID)
func (r *repo) SaveSettlement(ctx context.Context, settlement *model.Settlement) error {
	if settlement.Result.ID == 0 {
		return errors.New("settlement result is not saved")
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.dbc)

	sqlStr, args, err := headerQuery(settlement).ToSql()
	if err != nil {
		return err
	}

	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&settlement.ID, &settlement.CreatedAt)
	if err != nil {
		return err
	}

	if len(settlement.Breakdown.Items) == 0 {
		return nil
	}

	sqlStr, args, err = itemsQuery(settlement).ToSql()
	if err != nil {
		return err
	}

	_, err = conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

func headerQuery(s *model.Settlement) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colResultID, colResultType, colTotalPayout, colTotalStaked, colPartial).
		Values(
			s.Result.ID,
			string(s.Breakdown.ResultType),
			s.Breakdown.Total.String(),
			s.TotalStaked.String(),
			s.Breakdown.Partial,
		).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)
}

// itemsQuery одна вставка на все составляющие выплаты
func itemsQuery(s *model.Settlement) sq.InsertBuilder {
	query := sq.Insert(itemsTable).
		Columns(colSettlementID, colGameType, colPattern, colStaked, colRate, colAmount).
		PlaceholderFormat(sq.Dollar)

	for _, it := range s.Breakdown.Items {
		query = query.Values(
			s.ID,
			string(it.GameType),
			it.Pattern,
			it.Staked.String(),
			it.Rate.String(),
			it.Amount.String(),
		)
	}
	return query
}
