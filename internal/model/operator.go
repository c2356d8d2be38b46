package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// OperatorClaims claims access токена оператора, который объявляет результаты
type OperatorClaims struct {
	jwt.RegisteredClaims
}
