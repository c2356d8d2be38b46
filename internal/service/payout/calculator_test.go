package payout

import (
	"errors"
	"sync"
	"testing"

	"matka_backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func testRates() model.WinningRateTable {
	return model.WinningRateTable{
		model.RateSingle:      d(9),
		model.RateDouble:      d(90),
		model.RateSinglePanna: d(150),
		model.RateDoublePanna: d(300),
		model.RateTriplePanna: d(1000),
		model.RateHalfSangam:  d(1000),
		model.RateFullSangam:  d(10000),
	}
}

func newTestCalculator() *Calculator {
	return NewCalculator(testRates(), StandardPannaCatalogue())
}

// Ставки из сценария B: single panna 138 и single 2 (сумма цифр 138)
func scenarioBTotals() *model.AggregatedBetTotals {
	return &model.AggregatedBetTotals{
		SingleNumbers: model.Bucket{"2": d(20)},
		SinglePanna:   model.Bucket{"138": d(50)},
	}
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]any{"want %d, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestComputeForOpen_SingleNumber(t *testing.T) {
	totals := &model.AggregatedBetTotals{SingleNumbers: model.Bucket{"7": d(100)}}

	res, err := newTestCalculator().ComputeForOpen("7", totals)
	require.NoError(t, err)

	assert.Equal(t, model.GameSingle, res.ResultType)
	assert.Equal(t, model.SessionOpen, res.Session)
	assertDecimal(t, 900, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "7", res.Items[0].Pattern)
}

func TestComputeForOpen_DoubleNumber(t *testing.T) {
	totals := &model.AggregatedBetTotals{DoubleNumbers: model.Bucket{"05": d(10), "5": d(99)}}

	res, err := newTestCalculator().ComputeForOpen("05", totals)
	require.NoError(t, err)

	assert.Equal(t, model.GameDouble, res.ResultType)
	assertDecimal(t, 900, res.Total)
}

func TestComputeForOpen_Panna(t *testing.T) {
	res, err := newTestCalculator().ComputeForOpen("138", scenarioBTotals())
	require.NoError(t, err)

	assert.Equal(t, model.GameSinglePanna, res.ResultType)
	assertDecimal(t, 7500, res.ByGameType(model.GameSinglePanna))
	assertDecimal(t, 180, res.ByGameType(model.GameSingle))
	assertDecimal(t, 7680, res.Total)
	assert.False(t, res.Partial)
}

func TestComputeForOpen_PannaCategories(t *testing.T) {
	totals := &model.AggregatedBetTotals{
		SingleNumbers: model.Bucket{"4": d(1), "0": d(2)},
		DoublePanna:   model.Bucket{"112": d(10)},
		TriplePanna:   model.Bucket{"555": d(3)},
	}
	calc := newTestCalculator()

	res, err := calc.ComputeForOpen("112", totals)
	require.NoError(t, err)
	assert.Equal(t, model.GameDoublePanna, res.ResultType)
	// 10*300 + 1*9
	assertDecimal(t, 3009, res.Total)

	res, err = calc.ComputeForOpen("555", totals)
	require.NoError(t, err)
	assert.Equal(t, model.GameTriplePanna, res.ResultType)
	// сумма цифр 15 -> 5, ставок на 5 нет
	assertDecimal(t, 3000, res.Total)

	res, err = calc.ComputeForOpen("550", totals)
	require.NoError(t, err)
	assert.Equal(t, model.GameDoublePanna, res.ResultType)
	// сумма цифр 10 -> 0
	assertDecimal(t, 18, res.Total)
}

func TestComputeForOpen_AbsentPatternsPayZero(t *testing.T) {
	calc := newTestCalculator()

	for _, number := range []string{"3", "47", "138", "000"} {
		res, err := calc.ComputeForOpen(number, &model.AggregatedBetTotals{})
		require.NoError(t, err, number)
		assert.True(t, res.Total.IsZero(), number)

		res, err = calc.ComputeForOpen(number, nil)
		require.NoError(t, err, number)
		assert.True(t, res.Total.IsZero(), number)
	}
}

func TestComputeForOpen_InvalidResult(t *testing.T) {
	calc := newTestCalculator()

	for _, number := range []string{"", "1234", "1a", "-1", "321", "831", " 12"} {
		res, err := calc.ComputeForOpen(number, scenarioBTotals())
		assert.Nil(t, res, number)
		assert.ErrorIs(t, err, ErrInvalidResult, number)

		var invalid *InvalidResultError
		require.True(t, errors.As(err, &invalid), number)
		assert.Equal(t, number, invalid.Number)
	}
}

func TestComputeForClose_MissingOpenFallsBackToBase(t *testing.T) {
	res, err := newTestCalculator().ComputeForClose("138", nil, scenarioBTotals())

	assert.ErrorIs(t, err, ErrMissingOpenResult)
	require.NotNil(t, res)
	assert.True(t, res.Partial)
	assert.Equal(t, model.SessionClose, res.Session)
	assertDecimal(t, 7680, res.Total)
}

func TestComputeForClose_FullChain(t *testing.T) {
	totals := scenarioBTotals()
	totals.DoubleNumbers = model.Bucket{"92": d(10)}

	open := &model.OpenResult{Number: "234", Main: 9}
	res, err := newTestCalculator().ComputeForClose("138", open, totals)
	require.NoError(t, err)

	assertDecimal(t, 900, res.ByGameType(model.GameDouble))
	assertDecimal(t, 8580, res.Total)

	patterns := map[model.GameType]string{}
	for _, it := range res.Items {
		patterns[it.GameType] = it.Pattern
	}
	assert.Equal(t, "92", patterns[model.GameDouble])
	assert.Equal(t, "9X138", patterns[model.GameHalfSangamOpen])
	assert.Equal(t, "234X2", patterns[model.GameHalfSangamClose])
	assert.Equal(t, "234X912X138", patterns[model.GameFullSangam])
}

func TestComputeForClose_SangamBuckets(t *testing.T) {
	totals := scenarioBTotals()
	totals.DoubleNumbers = model.Bucket{"92": d(10)}
	totals.HalfSangamOpen = model.Bucket{"9X138": d(2)}
	totals.HalfSangamClose = model.Bucket{"234X2": d(3)}
	totals.FullSangam = model.Bucket{"234X912X138": d(1)}

	open := &model.OpenResult{Number: "234", Main: 9}
	res, err := newTestCalculator().ComputeForClose("138", open, totals)
	require.NoError(t, err)

	assertDecimal(t, 2000, res.ByGameType(model.GameHalfSangamOpen))
	assertDecimal(t, 3000, res.ByGameType(model.GameHalfSangamClose))
	assertDecimal(t, 10000, res.ByGameType(model.GameFullSangam))
	// 8580 + 2000 + 3000 + 10000
	assertDecimal(t, 23580, res.Total)
}

func TestComputeForClose_OpenMainZeroKeepsTwoDigitJodi(t *testing.T) {
	totals := &model.AggregatedBetTotals{DoubleNumbers: model.Bucket{"02": d(1)}}

	// 190: сумма цифр 10 -> main 0
	open, err := NewOpenResult("190")
	require.NoError(t, err)
	assert.Equal(t, 0, open.Main)

	res, err := newTestCalculator().ComputeForClose("138", open, totals)
	require.NoError(t, err)
	assertDecimal(t, 90, res.ByGameType(model.GameDouble))
}

func TestComputeForClose_CombinedMainAbove99(t *testing.T) {
	totals := &model.AggregatedBetTotals{DoubleNumbers: model.Bucket{"22": d(2)}}

	// main open из двух цифр даст 122 -> 22
	open := &model.OpenResult{Number: "234", Main: 12}
	res, err := newTestCalculator().ComputeForClose("138", open, totals)
	require.NoError(t, err)

	var jodi *model.PayoutItem
	for i := range res.Items {
		if res.Items[i].GameType == model.GameDouble {
			jodi = &res.Items[i]
		}
	}
	require.NotNil(t, jodi)
	assert.Equal(t, "22", jodi.Pattern)
	assertDecimal(t, 180, jodi.Amount)
}

func TestComputeForClose_NonPannaHasNoSangamTerms(t *testing.T) {
	totals := &model.AggregatedBetTotals{
		SingleNumbers: model.Bucket{"7": d(100)},
		DoubleNumbers: model.Bucket{"47": d(1)},
	}
	open := &model.OpenResult{Number: "234", Main: 9}
	calc := newTestCalculator()

	res, err := calc.ComputeForClose("7", open, totals)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assertDecimal(t, 900, res.Total)

	res, err = calc.ComputeForClose("47", open, totals)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assertDecimal(t, 90, res.Total)
}

func TestComputeForClose_InvalidNumbers(t *testing.T) {
	calc := newTestCalculator()

	_, err := calc.ComputeForClose("321", &model.OpenResult{Number: "234", Main: 9}, scenarioBTotals())
	assert.ErrorIs(t, err, ErrInvalidResult)

	_, err = calc.ComputeForClose("138", &model.OpenResult{Number: "2x4", Main: 9}, scenarioBTotals())
	assert.ErrorIs(t, err, ErrInvalidResult)

	// Неверный close без open - это ошибка формата, а не missing open
	_, err = calc.ComputeForClose("99999", nil, scenarioBTotals())
	assert.ErrorIs(t, err, ErrInvalidResult)
	assert.NotErrorIs(t, err, ErrMissingOpenResult)
}

func TestCompute_Idempotent(t *testing.T) {
	calc := newTestCalculator()
	totals := scenarioBTotals()
	open := &model.OpenResult{Number: "234", Main: 9}

	first, err := calc.ComputeForClose("138", open, totals)
	require.NoError(t, err)
	second, err := calc.ComputeForClose("138", open, totals)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	a, err := calc.ComputeForOpen("138", totals)
	require.NoError(t, err)
	b, err := calc.ComputeForOpen("138", totals)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_ConcurrentCallers(t *testing.T) {
	calc := newTestCalculator()
	totals := scenarioBTotals()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := calc.ComputeForOpen("138", totals)
			if assert.NoError(t, err) {
				assertDecimal(t, 7680, res.Total)
			}
		}()
	}
	wg.Wait()
}

func TestCompute_DecimalRates(t *testing.T) {
	rates := testRates()
	rates[model.RateSingle] = decimal.RequireFromString("9.5")
	calc := NewCalculator(rates, nil)

	totals := &model.AggregatedBetTotals{SingleNumbers: model.Bucket{"7": decimal.RequireFromString("10.10")}}
	res, err := calc.ComputeForOpen("7", totals)
	require.NoError(t, err)
	assert.Equal(t, "95.95", res.Total.StringFixed(2))
}

func TestNewOpenResult(t *testing.T) {
	open, err := NewOpenResult("234")
	require.NoError(t, err)
	assert.Equal(t, &model.OpenResult{Number: "234", Main: 9}, open)

	_, err = NewOpenResult("12345")
	assert.ErrorIs(t, err, ErrInvalidResult)
}
