package result_repo

import (
	"context"
	"errors"
	"time"

	"matka_backend/internal/model"
	"matka_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "results"
	colID         = "id"
	colMarketID   = "market_id"
	colResultDate = "result_date"
	colSession    = "session"
	colNumber     = "number"
	colMain       = "main"
	colOperatorID = "operator_id"
	colCreatedAt  = "created_at"

	uniqueViolationCode = "23505"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewResultRepository(dbc *pgxpool.Pool) repository.ResultRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetResult - объявленный результат сессии рынка за день.
// Возвращает nil, если результата нет
func (r *repo) GetResult(ctx context.Context, marketID string, date time.Time, session model.Session) (*model.DeclaredResult, error) {
	sqlStr, args, err := getQuery(marketID, date, session).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		res        model.DeclaredResult
		rawSession string
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&res.ID, &res.MarketID, &res.Date, &rawSession, &res.Number, &res.Main, &res.OperatorID, &res.CreatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	res.Session = model.Session(rawSession)
	return &res, nil
}

// SaveResult - сохраняет объявленный результат, заполняет ID и CreatedAt.
// Повторное объявление той же сессии возвращает repository.ErrAlreadyDeclared
func (r *repo) SaveResult(ctx context.Context, result *model.DeclaredResult) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colMarketID, colResultDate, colSession, colNumber, colMain, colOperatorID).
		Values(result.MarketID, result.Date, string(result.Session), result.Number, result.Main, result.OperatorID).
		Suffix("RETURNING " + colID + ", " + colCreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return mapSaveErr(err)
	}

	return nil
}

func getQuery(marketID string, date time.Time, session model.Session) sq.SelectBuilder {
	return sq.Select(colID, colMarketID, colResultDate, colSession, colNumber, colMain, colOperatorID, colCreatedAt).
		From(table).
		Where(sq.Eq{
			colMarketID:   marketID,
			colResultDate: date,
			colSession:    string(session),
		}).
		PlaceholderFormat(sq.Dollar)
}

// mapSaveErr нарушение уникальности (рынок, дата, сессия) -> ErrAlreadyDeclared
func mapSaveErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrAlreadyDeclared
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
