package bet_repo

import (
	"testing"
	"time"

	"matka_backend/internal/model"
	"matka_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateQuery(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	sqlStr, args, err := aggregateQuery(repository.BetFilter{
		MarketID: "m-1",
		Date:     date,
		Session:  model.SessionClose,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT game_type, pattern, SUM(amount)::text FROM bets "+
			"WHERE bet_date = $1 AND market_id = $2 AND session = $3 "+
			"GROUP BY game_type, pattern",
		sqlStr)
	assert.Equal(t, []any{date, "m-1", "close"}, args)
}
