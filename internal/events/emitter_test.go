package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"matka_backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return p.err
}

func testSettlement() *model.Settlement {
	s := &model.Settlement{
		ID: 3,
		Result: model.DeclaredResult{
			MarketID: "m-1",
			Date:     time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
			Session:  model.SessionClose,
			Number:   "138",
		},
		TotalStaked: decimal.NewFromInt(80),
	}
	s.Breakdown.Add(model.PayoutItem{GameType: model.GameSinglePanna, Pattern: "138", Amount: decimal.NewFromInt(7500)})
	s.Breakdown.Partial = true
	return s
}

func TestEmitSettlement(t *testing.T) {
	pub := &recordingPublisher{}
	e := NewEmitter(pub, "matka.results.declared")

	require.NoError(t, e.EmitSettlement(context.Background(), testSettlement()))
	assert.Equal(t, "matka.results.declared", pub.subject)

	var ev SettlementEvent
	require.NoError(t, json.Unmarshal(pub.data, &ev))
	assert.Equal(t, ResultDeclaredEventType, ev.Type)
	id, err := uuid.Parse(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
	assert.Equal(t, SettlementEventID(3), ev.ID)
	assert.Equal(t, int64(3), ev.SettlementID)
	assert.Equal(t, "2026-10-14", ev.Date)
	assert.Equal(t, model.SessionClose, ev.Session)
	assert.Equal(t, "7500", ev.TotalPayout)
	assert.Equal(t, "80", ev.TotalStaked)
	assert.True(t, ev.Partial)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, "138", ev.Items[0].Pattern)
}

func TestSettlementEventID_StableAcrossRetries(t *testing.T) {
	first := NewSettlementEvent(testSettlement())
	second := NewSettlementEvent(testSettlement())
	assert.Equal(t, first.ID, second.ID)

	other := testSettlement()
	other.ID = 4
	assert.NotEqual(t, first.ID, NewSettlementEvent(other).ID)
	assert.NotEqual(t, SettlementEventID(1), SettlementEventID(10))
}

func TestEmitSettlement_PublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("nats down")}
	e := NewEmitter(pub, "subj")

	assert.EqualError(t, e.EmitSettlement(context.Background(), testSettlement()), "nats down")
	e.Close()
}

func TestNopEmitter(t *testing.T) {
	e := NewNopEmitter()
	assert.NoError(t, e.EmitSettlement(context.Background(), testSettlement()))
	e.Close()
}
