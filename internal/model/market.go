package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Market метаданные рынка (только для отображения)
type Market struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

type MarketRefKind string

const (
	MarketRefID        MarketRefKind = "id"
	MarketRefPopulated MarketRefKind = "populated"
)

// MarketRef ссылка на рынок: либо просто id, либо заполненный объект
type MarketRef struct {
	Kind   MarketRefKind
	ID     string
	Market *Market
}

func MarketRefFromID(id string) MarketRef {
	return MarketRef{Kind: MarketRefID, ID: id}
}

func MarketRefFromMarket(m *Market) MarketRef {
	return MarketRef{Kind: MarketRefPopulated, Market: m}
}

// MarketID возвращает id рынка для обеих форм ссылки
func (r MarketRef) MarketID() string {
	switch r.Kind {
	case MarketRefPopulated:
		if r.Market != nil {
			return r.Market.ID
		}
		return ""
	default:
		return r.ID
	}
}

func (r MarketRef) IsZero() bool {
	return r.MarketID() == ""
}

func (r MarketRef) MarshalJSON() ([]byte, error) {
	if r.Kind == MarketRefPopulated && r.Market != nil {
		return json.Marshal(r.Market)
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON принимает как строку id, так и объект рынка
func (r *MarketRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = MarketRef{}
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = MarketRefFromID(id)
		return nil
	case '{':
		var m Market
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*r = MarketRefFromMarket(&m)
		return nil
	}

	return errors.New("market ref must be a string id or an object")
}
