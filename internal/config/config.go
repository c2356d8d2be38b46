package config

import (
	"time"

	"matka_backend/internal/model"
	"matka_backend/internal/service/payout"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// MissingOpenPolicy что делать с close, если open еще не объявлен
type MissingOpenPolicy string

const (
	// MissingOpenFallback посчитать только базу и пометить расчет частичным
	MissingOpenFallback MissingOpenPolicy = "fallback"
	// MissingOpenReject отклонить объявление close
	MissingOpenReject MissingOpenPolicy = "reject"
)

func (p MissingOpenPolicy) Valid() bool {
	return p == MissingOpenFallback || p == MissingOpenReject
}

type GameConfig interface {
	WinningRates() model.WinningRateTable
	PannaCatalogue() *payout.PannaCatalogue
	MissingOpenPolicy() MissingOpenPolicy
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type NATSConfig interface {
	URL() string
	Subject() string
	Enabled() bool
}
