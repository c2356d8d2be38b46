package result

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"matka_backend/internal/middleware"
	"matka_backend/internal/model"
	"matka_backend/internal/repository"
	"matka_backend/internal/service/declaration"
	"matka_backend/internal/service/payout"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	declared   model.Declaration
	previewed  model.Preview
	operatorID int
	err        error
}

func (s *fakeService) Declare(ctx context.Context, req model.Declaration) (*model.Settlement, error) {
	s.declared = req
	s.operatorID, _ = middleware.OperatorIDFromContext(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return &model.Settlement{
		ID: 3,
		Result: model.DeclaredResult{
			ID:       11,
			MarketID: req.Market.MarketID(),
			Date:     req.Date,
			Session:  req.Session,
			Number:   req.Number,
			Main:     9,
		},
		Breakdown: model.PayoutBreakdown{
			Session:      req.Session,
			ResultNumber: req.Number,
			ResultType:   model.GameSinglePanna,
			Total:        decimal.NewFromInt(1400),
		},
		TotalStaked: decimal.NewFromInt(5000),
	}, nil
}

func (s *fakeService) Preview(_ context.Context, req model.Preview) (*model.PayoutBreakdown, error) {
	s.previewed = req
	if s.err != nil {
		return nil, s.err
	}
	return &model.PayoutBreakdown{
		Session:      req.Session,
		ResultNumber: req.Number,
		ResultType:   model.GameSingle,
		Total:        decimal.NewFromInt(900),
		Items: []model.PayoutItem{{
			GameType: model.GameSingle,
			Pattern:  req.Number,
			Staked:   decimal.NewFromInt(100),
			Rate:     decimal.NewFromInt(9),
			Amount:   decimal.NewFromInt(900),
		}},
	}, nil
}

func (s *fakeService) GetResult(_ context.Context, marketID string, date time.Time, session model.Session) (*model.DeclaredResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.DeclaredResult{ID: 1, MarketID: marketID, Date: date, Session: session, Number: "45", Main: 9}, nil
}

func newRouter(svc *fakeService) chi.Router {
	h := NewHandler(HandlerDeps{Serv: svc})
	r := chi.NewRouter()
	r.Post("/results/preview", h.Preview)
	r.With(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithOperatorID(r.Context(), 42)))
		})
	}).Post("/markets/{marketID}/results", h.Declare)
	r.Get("/markets/{marketID}/results/{date}/{session}", h.GetResult)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPreview(t *testing.T) {
	svc := &fakeService{}
	rec := do(t, newRouter(svc), http.MethodPost, "/results/preview",
		`{"session":"close","number":"138","open":{"number":"234"},"totals":{"singleNumbers":{"2":"100"}}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, svc.previewed.Open)
	assert.Equal(t, 9, svc.previewed.Open.Main)
	assert.True(t, decimal.NewFromInt(100).Equal(svc.previewed.Totals.Amount(model.GameSingle, "2")))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "900", body["total"])
	assert.Len(t, body["items"], 1)
}

func TestPreview_BadRequest(t *testing.T) {
	r := newRouter(&fakeService{})

	rec := do(t, r, http.MethodPost, "/results/preview", `{"session":"open","unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/results/preview", `{"session":"close","number":"1","open":{"number":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreview_ValidationStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"negative totals", fmt.Errorf("%w: single 2: negative amount -5", declaration.ErrInvalidTotals)},
		{"open main out of range", fmt.Errorf("%w: got 12", declaration.ErrInvalidOpenMain)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(&fakeService{err: tt.err}), http.MethodPost, "/results/preview",
				`{"session":"close","number":"138","open":{"number":"234","main":12},"totals":{"singleNumbers":{"2":"-5"}}}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}
}

func TestDeclare(t *testing.T) {
	svc := &fakeService{}
	rec := do(t, newRouter(svc), http.MethodPost, "/markets/kalyan/results",
		`{"date":"2026-03-14","session":"open","number":"234"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "kalyan", svc.declared.Market.MarketID())
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), svc.declared.Date)
	assert.Equal(t, 42, svc.operatorID)

	var body struct {
		ID          int64  `json:"id"`
		TotalStaked string `json:"total_staked"`
		Result      struct {
			Date string `json:"date"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.ID)
	assert.Equal(t, "5000", body.TotalStaked)
	assert.Equal(t, "2026-03-14", body.Result.Date)
}

func TestDeclare_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid number", &payout.InvalidResultError{Number: "12a", Reason: "digits"}, http.StatusBadRequest},
		{"bad session", declaration.ErrInvalidSession, http.StatusBadRequest},
		{"already declared", repository.ErrAlreadyDeclared, http.StatusConflict},
		{"missing open", &payout.MissingOpenResultError{CloseNumber: "138"}, http.StatusConflict},
		{"close already declared", declaration.ErrCloseDeclared, http.StatusConflict},
		{"no operator", declaration.ErrNoOperator, http.StatusUnauthorized},
		{"internal", errors.New("db is down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(&fakeService{err: tt.err}), http.MethodPost, "/markets/kalyan/results",
				`{"date":"2026-03-14","session":"open","number":"234"}`)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "db is down")
			}
		})
	}
}

func TestDeclare_BadDate(t *testing.T) {
	svc := &fakeService{}
	rec := do(t, newRouter(svc), http.MethodPost, "/markets/kalyan/results",
		`{"date":"14.03.2026","session":"open","number":"234"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.declared.Number)
}

func TestGetResult(t *testing.T) {
	rec := do(t, newRouter(&fakeService{}), http.MethodGet, "/markets/kalyan/results/2026-03-14/open", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"number":"45"`)

	rec = do(t, newRouter(&fakeService{err: declaration.ErrResultNotFound}), http.MethodGet, "/markets/kalyan/results/2026-03-14/close", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
