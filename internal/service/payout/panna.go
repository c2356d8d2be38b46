package payout

import (
	"fmt"
	"sort"

	"matka_backend/internal/model"
)

// PannaCatalogue списки допустимых панн по категориям
type PannaCatalogue struct {
	index map[string]model.GameType
}

// NewPannaCatalogue строит справочник из явных списков.
// Номер не может входить в две категории сразу
func NewPannaCatalogue(single, double, triple []string) (*PannaCatalogue, error) {
	c := &PannaCatalogue{index: make(map[string]model.GameType, len(single)+len(double)+len(triple))}

	lists := []struct {
		gameType model.GameType
		numbers  []string
	}{
		{model.GameSinglePanna, single},
		{model.GameDoublePanna, double},
		{model.GameTriplePanna, triple},
	}

	for _, l := range lists {
		for _, n := range l.numbers {
			if len(n) != 3 || !isDigits(n) {
				return nil, fmt.Errorf("%s: %q is not a 3-digit panna", l.gameType, n)
			}
			if prev, ok := c.index[n]; ok && prev != l.gameType {
				return nil, fmt.Errorf("panna %q listed as both %s and %s", n, prev, l.gameType)
			}
			c.index[n] = l.gameType
		}
	}

	return c, nil
}

// StandardPannaCatalogue стандартные списки: 120 single, 90 double, 10 triple.
// Цифры идут по возрастанию, 0 считается старшей цифрой (127, 190, 550)
func StandardPannaCatalogue() *PannaCatalogue {
	single, double, triple := StandardPannas()
	c, err := NewPannaCatalogue(single, double, triple)
	if err != nil {
		// Сгенерированные списки всегда корректны
		panic(err)
	}
	return c
}

// StandardPannas генерирует стандартные списки панн
func StandardPannas() (single, double, triple []string) {
	for a := 0; a <= 9; a++ {
		for b := a; b <= 9; b++ {
			for c := b; c <= 9; c++ {
				n := pannaString([]int{a, b, c})
				switch {
				case a == b && b == c:
					triple = append(triple, n)
				case a == b || b == c || a == c:
					double = append(double, n)
				default:
					single = append(single, n)
				}
			}
		}
	}

	sort.Strings(single)
	sort.Strings(double)
	sort.Strings(triple)
	return single, double, triple
}

// Classify возвращает категорию панны
func (c *PannaCatalogue) Classify(number string) (model.GameType, bool) {
	if c == nil {
		return "", false
	}
	g, ok := c.index[number]
	return g, ok
}

// Len количество панн в категории
func (c *PannaCatalogue) Len(g model.GameType) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, t := range c.index {
		if t == g {
			n++
		}
	}
	return n
}

// pannaString раскладывает цифры по возрастанию ранга (0 - старшая)
func pannaString(d []int) string {
	rank := func(x int) int {
		if x == 0 {
			return 10
		}
		return x
	}
	sort.Slice(d, func(i, j int) bool { return rank(d[i]) < rank(d[j]) })
	return fmt.Sprintf("%d%d%d", d[0], d[1], d[2])
}
