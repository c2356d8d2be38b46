package payout

import (
	"fmt"
	"strconv"

	"matka_backend/internal/model"
	"matka_backend/pkg/digits"

	"github.com/shopspring/decimal"
)

// Максимальное значение комбинированного джоди (две цифры)
const maxCombinedMain = 99

// Calculator считает выплаты по объявленному результату.
// Не хранит состояния между вызовами, безопасен для конкурентного использования
type Calculator struct {
	rates  model.WinningRateTable
	pannas *PannaCatalogue
}

// NewCalculator создать калькулятор с таблицей коэффициентов и справочником панн
func NewCalculator(rates model.WinningRateTable, pannas *PannaCatalogue) *Calculator {
	if pannas == nil {
		pannas = StandardPannaCatalogue()
	}
	return &Calculator{
		rates:  rates,
		pannas: pannas,
	}
}

// Classify проверяет номер результата и возвращает его тип:
// single (1 цифра), double (2 цифры) или категорию панны (3 цифры)
func (c *Calculator) Classify(number string) (model.GameType, error) {
	if len(number) < 1 || len(number) > 3 {
		return "", &InvalidResultError{Number: number, Reason: "must be 1 to 3 digits"}
	}
	if !isDigits(number) {
		return "", &InvalidResultError{Number: number, Reason: "must contain digits only"}
	}

	switch len(number) {
	case 1:
		return model.GameSingle, nil
	case 2:
		return model.GameDouble, nil
	}

	g, ok := c.pannas.Classify(number)
	if !ok {
		return "", &InvalidResultError{Number: number, Reason: "not found in any panna list"}
	}
	return g, nil
}

// ComputeForOpen выплаты по open результату
func (c *Calculator) ComputeForOpen(number string, totals *model.AggregatedBetTotals) (*model.PayoutBreakdown, error) {
	return c.base(model.SessionOpen, number, totals)
}

// ComputeForClose выплаты по close результату.
// Без open результата считается только база (панна + сумма цифр), breakdown
// помечается Partial и вместе с ним возвращается ошибка ErrMissingOpenResult
func (c *Calculator) ComputeForClose(number string, open *model.OpenResult, totals *model.AggregatedBetTotals) (*model.PayoutBreakdown, error) {
	if open != nil {
		if _, err := c.Classify(open.Number); err != nil {
			return nil, fmt.Errorf("open result: %w", err)
		}
	}

	res, err := c.base(model.SessionClose, number, totals)
	if err != nil {
		return nil, err
	}

	if open == nil {
		res.Partial = true
		return res, &MissingOpenResultError{CloseNumber: number}
	}

	// Одна и две цифры на close рассчитываются так же, как на open
	if !res.ResultType.IsPanna() {
		return res, nil
	}

	closeValue, _ := strconv.Atoi(number)
	openValue, _ := strconv.Atoi(open.Number)
	closeMain := digits.MainValue(closeValue)

	// Комбинированный джоди: main open + main close
	combinedMain, _ := strconv.Atoi(strconv.Itoa(open.Main) + strconv.Itoa(closeMain))
	if combinedMain > maxCombinedMain {
		combinedMain %= maxCombinedMain + 1
	}
	res.Add(c.item(model.GameDouble, fmt.Sprintf("%02d", combinedMain), totals))

	// Half sangam open: main open X панна close
	res.Add(c.item(model.GameHalfSangamOpen,
		EncodeSangamKey(strconv.Itoa(open.Main), number), totals))

	// Half sangam close: панна open X main close
	res.Add(c.item(model.GameHalfSangamClose,
		EncodeSangamKey(open.Number, strconv.Itoa(closeMain)), totals))

	// Full sangam: панна open X (сумма цифр open, сумма цифр close) X панна close
	combinedDigitSums := strconv.Itoa(digits.DigitSum(openValue)) + strconv.Itoa(digits.DigitSum(closeValue))
	res.Add(c.item(model.GameFullSangam,
		EncodeSangamKey(open.Number, combinedDigitSums, number), totals))

	return res, nil
}

// base выплаты по самому номеру: число, джоди или панна + сумма цифр
func (c *Calculator) base(session model.Session, number string, totals *model.AggregatedBetTotals) (*model.PayoutBreakdown, error) {
	resultType, err := c.Classify(number)
	if err != nil {
		return nil, err
	}

	res := &model.PayoutBreakdown{
		Session:      session,
		ResultNumber: number,
		ResultType:   resultType,
		Total:        decimal.Zero,
		Items:        make([]model.PayoutItem, 0, 6),
	}

	res.Add(c.item(resultType, number, totals))

	if resultType.IsPanna() {
		value, _ := strconv.Atoi(number)
		res.Add(c.item(model.GameSingle, strconv.Itoa(digits.MainValue(value)), totals))
	}

	return res, nil
}

func (c *Calculator) item(g model.GameType, pattern string, totals *model.AggregatedBetTotals) model.PayoutItem {
	staked := totals.Amount(g, pattern)
	rate := c.rates.Rate(g.RateTag())
	return model.PayoutItem{
		GameType: g,
		Pattern:  pattern,
		Staked:   staked,
		Rate:     rate,
		Amount:   staked.Mul(rate),
	}
}

// NewOpenResult open результат для расчета close: номер и его main
func NewOpenResult(number string) (*model.OpenResult, error) {
	if len(number) < 1 || len(number) > 3 || !isDigits(number) {
		return nil, &InvalidResultError{Number: number, Reason: "must be 1 to 3 digits"}
	}
	value, _ := strconv.Atoi(number)
	return &model.OpenResult{Number: number, Main: digits.MainValue(value)}, nil
}
