package payout

import (
	"errors"
	"fmt"
	"strings"
)

// SangamSeparator разделитель частей в ключе сангама ("9X138", "234X912X138")
const SangamSeparator = "X"

// EncodeSangamKey собирает составной ключ сангама из частей
func EncodeSangamKey(parts ...string) string {
	return strings.Join(parts, SangamSeparator)
}

// DecodeSangamKey разбирает составной ключ сангама на части.
// Каждая часть должна быть непустой строкой из цифр
func DecodeSangamKey(key string) ([]string, error) {
	if key == "" {
		return nil, errors.New("empty sangam key")
	}

	parts := strings.Split(key, SangamSeparator)
	if len(parts) < 2 {
		return nil, fmt.Errorf("sangam key %q has no separator", key)
	}

	for _, p := range parts {
		if p == "" || !isDigits(p) {
			return nil, fmt.Errorf("sangam key %q has invalid part %q", key, p)
		}
	}
	return parts, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
