package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bucket суммы ставок по паттерну (ключ - ровно то, что выбрал игрок)
type Bucket map[string]decimal.Decimal

// AggregatedBetTotals суммы ставок, сгруппированные по типу ставки и паттерну
type AggregatedBetTotals struct {
	SingleNumbers   Bucket `json:"singleNumbers,omitempty"`
	DoubleNumbers   Bucket `json:"doubleNumbers,omitempty"`
	SinglePanna     Bucket `json:"singlePanna,omitempty"`
	DoublePanna     Bucket `json:"doublePanna,omitempty"`
	TriplePanna     Bucket `json:"triplePanna,omitempty"`
	HalfSangamOpen  Bucket `json:"halfSangamOpen,omitempty"`
	HalfSangamClose Bucket `json:"halfSangamClose,omitempty"`
	FullSangam      Bucket `json:"fullSangam,omitempty"`
}

// Amount возвращает сумму по паттерну. Отсутствующий паттерн - ноль
func (b Bucket) Amount(pattern string) decimal.Decimal {
	if v, ok := b[pattern]; ok {
		return v
	}
	return decimal.Zero
}

// Total сумма всех ставок бакета
func (b Bucket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// Bucket возвращает бакет по типу ставки, nil для неизвестного типа
func (t *AggregatedBetTotals) Bucket(g GameType) Bucket {
	if t == nil {
		return nil
	}
	switch g {
	case GameSingle:
		return t.SingleNumbers
	case GameDouble:
		return t.DoubleNumbers
	case GameSinglePanna:
		return t.SinglePanna
	case GameDoublePanna:
		return t.DoublePanna
	case GameTriplePanna:
		return t.TriplePanna
	case GameHalfSangamOpen:
		return t.HalfSangamOpen
	case GameHalfSangamClose:
		return t.HalfSangamClose
	case GameFullSangam:
		return t.FullSangam
	}
	return nil
}

// Amount сумма ставок по типу и паттерну
func (t *AggregatedBetTotals) Amount(g GameType, pattern string) decimal.Decimal {
	return t.Bucket(g).Amount(pattern)
}

// Add прибавляет сумму к паттерну, создавая бакет при необходимости
func (t *AggregatedBetTotals) Add(g GameType, pattern string, amount decimal.Decimal) bool {
	b := t.bucketRef(g)
	if b == nil {
		return false
	}
	if *b == nil {
		*b = make(Bucket)
	}
	(*b)[pattern] = (*b).Amount(pattern).Add(amount)
	return true
}

// Total сумма всех ставок во всех бакетах
func (t *AggregatedBetTotals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, g := range GameTypes {
		total = total.Add(t.Bucket(g).Total())
	}
	return total
}

// Validate суммы ставок не могут быть отрицательными
func (t *AggregatedBetTotals) Validate() error {
	for _, g := range GameTypes {
		for pattern, v := range t.Bucket(g) {
			if v.IsNegative() {
				return fmt.Errorf("%s %q: negative amount %s", g, pattern, v)
			}
		}
	}
	return nil
}

func (t *AggregatedBetTotals) bucketRef(g GameType) *Bucket {
	switch g {
	case GameSingle:
		return &t.SingleNumbers
	case GameDouble:
		return &t.DoubleNumbers
	case GameSinglePanna:
		return &t.SinglePanna
	case GameDoublePanna:
		return &t.DoublePanna
	case GameTriplePanna:
		return &t.TriplePanna
	case GameHalfSangamOpen:
		return &t.HalfSangamOpen
	case GameHalfSangamClose:
		return &t.HalfSangamClose
	case GameFullSangam:
		return &t.FullSangam
	}
	return nil
}
