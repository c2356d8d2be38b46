package stats

import (
	"errors"
	"net/http"

	"matka_backend/internal/converter"
	"matka_backend/internal/service"
	statsServ "matka_backend/internal/service/stats"
	"matka_backend/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.StatsService
}

type Handler struct {
	serv service.StatsService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// List GET /stats
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMarketStatsList(h.serv.AllStats(r.Context())))
}

// Market GET /stats/{marketID}
func (h *Handler) Market(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.MarketStats(r.Context(), chi.URLParam(r, "marketID"))
	if err != nil {
		if errors.Is(err, statsServ.ErrMarketNotFound) {
			resp.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		resp.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMarketStatsResponse(*st))
}
