package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GameType тип ставки (бакет агрегированных сумм)
type GameType string

const (
	GameSingle          GameType = "single"
	GameDouble          GameType = "double"
	GameSinglePanna     GameType = "single_panna"
	GameDoublePanna     GameType = "double_panna"
	GameTriplePanna     GameType = "triple_panna"
	GameHalfSangamOpen  GameType = "half_sangam_open"
	GameHalfSangamClose GameType = "half_sangam_close"
	GameFullSangam      GameType = "full_sangam"
)

// GameTypes все известные типы ставок в порядке разбивки выплат
var GameTypes = []GameType{
	GameSingle,
	GameDouble,
	GameSinglePanna,
	GameDoublePanna,
	GameTriplePanna,
	GameHalfSangamOpen,
	GameHalfSangamClose,
	GameFullSangam,
}

func (g GameType) Valid() bool {
	for _, t := range GameTypes {
		if t == g {
			return true
		}
	}
	return false
}

// IsPanna true для трёх видов панны
func (g GameType) IsPanna() bool {
	return g == GameSinglePanna || g == GameDoublePanna || g == GameTriplePanna
}

// RateTag ключ в таблице коэффициентов
type RateTag string

const (
	RateSingle      RateTag = "single"
	RateDouble      RateTag = "double"
	RateSinglePanna RateTag = "single_panna"
	RateDoublePanna RateTag = "double_panna"
	RateTriplePanna RateTag = "triple_panna"
	RateHalfSangam  RateTag = "half_sangam"
	RateFullSangam  RateTag = "full_sangam"
)

// RateTags все теги коэффициентов, которые должны быть в конфиге
var RateTags = []RateTag{
	RateSingle,
	RateDouble,
	RateSinglePanna,
	RateDoublePanna,
	RateTriplePanna,
	RateHalfSangam,
	RateFullSangam,
}

// RateTag возвращает тег коэффициента для типа ставки.
// Обе половины сангама платятся по одному коэффициенту
func (g GameType) RateTag() RateTag {
	switch g {
	case GameHalfSangamOpen, GameHalfSangamClose:
		return RateHalfSangam
	case GameFullSangam:
		return RateFullSangam
	default:
		return RateTag(g)
	}
}

// WinningRateTable множители выплат по тегам
type WinningRateTable map[RateTag]decimal.Decimal

// Rate возвращает коэффициент или ноль, если его нет в таблице
func (t WinningRateTable) Rate(tag RateTag) decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	if r, ok := t[tag]; ok {
		return r
	}
	return decimal.Zero
}

// RateScale максимум знаков после запятой у ставки выплаты (rate NUMERIC(12,4))
const RateScale = 4

// Validate проверяет, что все теги заданы, неотрицательны и укладываются в RateScale
func (t WinningRateTable) Validate() error {
	for _, tag := range RateTags {
		r, ok := t[tag]
		if !ok {
			return fmt.Errorf("winning rate %q not configured", tag)
		}
		if r.IsNegative() {
			return fmt.Errorf("winning rate %q is negative: %s", tag, r)
		}
		if !r.Equal(r.Truncate(RateScale)) {
			return fmt.Errorf("winning rate %q has more than %d decimal places: %s", tag, RateScale, r)
		}
	}
	return nil
}
