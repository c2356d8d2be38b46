package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"matka_backend/internal/model"
	"matka_backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const ResultDeclaredEventType = "result.declared"

// settlementNamespace пространство имен для ID событий расчета
var settlementNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("matka.settlement"))

// SettlementEvent событие для леджера: результат объявлен, выплаты посчитаны
type SettlementEvent struct {
	ID           string             `json:"id"` // Ключ идемпотентности: одинаков для повторных публикаций одного расчета
	Type         string             `json:"type"`
	SettlementID int64              `json:"settlement_id"`
	MarketID     string             `json:"market_id"`
	Date         string             `json:"date"`
	Session      model.Session      `json:"session"`
	Number       string             `json:"number"`
	TotalStaked  string             `json:"total_staked"`
	TotalPayout  string             `json:"total_payout"`
	Partial      bool               `json:"partial"`
	Items        []model.PayoutItem `json:"items"`
	Timestamp    int64              `json:"timestamp"`
}

type Emitter interface {
	EmitSettlement(ctx context.Context, s *model.Settlement) error
	Close()
}

// Publisher то, что нужно эмиттеру от NATS соединения
type Publisher interface {
	Publish(subject string, data []byte) error
}

type emitter struct {
	pub     Publisher
	closer  func()
	subject string
}

// NewEmitter эмиттер поверх произвольного паблишера
func NewEmitter(pub Publisher, subject string) Emitter {
	return &emitter{pub: pub, subject: subject}
}

// NewNATSEmitter подключается к NATS и публикует события в subject
func NewNATSEmitter(url, subject string) (Emitter, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("Disconnected from NATS", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &emitter{
		pub:     nc,
		closer:  nc.Close,
		subject: subject,
	}, nil
}

func (e *emitter) EmitSettlement(_ context.Context, s *model.Settlement) error {
	data, err := json.Marshal(NewSettlementEvent(s))
	if err != nil {
		return err
	}
	return e.pub.Publish(e.subject, data)
}

func (e *emitter) Close() {
	if e.closer != nil {
		e.closer()
	}
}

// SettlementEventID uuid v5 от ID расчета
func SettlementEventID(settlementID int64) string {
	return uuid.NewSHA1(settlementNamespace, []byte(strconv.FormatInt(settlementID, 10))).String()
}

// NewSettlementEvent событие из сохраненного расчета
func NewSettlementEvent(s *model.Settlement) SettlementEvent {
	return SettlementEvent{
		ID:           SettlementEventID(s.ID),
		Type:         ResultDeclaredEventType,
		SettlementID: s.ID,
		MarketID:     s.Result.MarketID,
		Date:         s.Result.Date.Format(time.DateOnly),
		Session:      s.Result.Session,
		Number:       s.Result.Number,
		TotalStaked:  s.TotalStaked.String(),
		TotalPayout:  s.Breakdown.Total.String(),
		Partial:      s.Breakdown.Partial,
		Items:        s.Breakdown.Items,
		Timestamp:    time.Now().UTC().Unix(),
	}
}

type nopEmitter struct{}

// NewNopEmitter эмиттер, который ничего не публикует (NATS отключен)
func NewNopEmitter() Emitter {
	return nopEmitter{}
}

func (nopEmitter) EmitSettlement(context.Context, *model.Settlement) error { return nil }

func (nopEmitter) Close() {}
