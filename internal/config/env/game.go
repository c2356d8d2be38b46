package env

import (
	"fmt"
	"os"

	"matka_backend/internal/config"
	"matka_backend/internal/model"
	"matka_backend/internal/service/payout"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type gameFile struct {
	Game struct {
		MissingOpenPolicy string            `yaml:"missing_open_policy"`
		Rates             map[string]string `yaml:"rates"`
		Panna             *struct {
			Single []string `yaml:"single"`
			Double []string `yaml:"double"`
			Triple []string `yaml:"triple"`
		} `yaml:"panna"`
	} `yaml:"game"`
}

type gameConfig struct {
	rates  model.WinningRateTable
	pannas *payout.PannaCatalogue
	policy config.MissingOpenPolicy
}

// NewGameConfigFromYAML читает коэффициенты, списки панн и политику из YAML файла
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig разбирает YAML конфиг игры.
// Если списки панн не заданы, используются стандартные
func ParseGameConfig(data []byte) (config.GameConfig, error) {
	var file gameFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}

	rates := make(model.WinningRateTable, len(file.Game.Rates))
	for tag, raw := range file.Game.Rates {
		r, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("winning rate %q: %w", tag, err)
		}
		rates[model.RateTag(tag)] = r
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}

	pannas := payout.StandardPannaCatalogue()
	if p := file.Game.Panna; p != nil {
		custom, err := payout.NewPannaCatalogue(p.Single, p.Double, p.Triple)
		if err != nil {
			return nil, fmt.Errorf("panna lists: %w", err)
		}
		pannas = custom
	}

	return newGameConfig(rates, pannas, file.Game.MissingOpenPolicy)
}

func newGameConfig(rates model.WinningRateTable, pannas *payout.PannaCatalogue, rawPolicy string) (config.GameConfig, error) {
	policy := config.MissingOpenPolicy(rawPolicy)
	if policy == "" {
		policy = config.MissingOpenFallback
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown missing_open_policy %q", rawPolicy)
	}

	return &gameConfig{
		rates:  rates,
		pannas: pannas,
		policy: policy,
	}, nil
}

func (c *gameConfig) WinningRates() model.WinningRateTable {
	return c.rates
}

func (c *gameConfig) PannaCatalogue() *payout.PannaCatalogue {
	return c.pannas
}

func (c *gameConfig) MissingOpenPolicy() config.MissingOpenPolicy {
	return c.policy
}
