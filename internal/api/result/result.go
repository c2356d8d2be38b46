package result

import (
	"errors"
	"net/http"

	dto "matka_backend/internal/api/dto/result"
	"matka_backend/internal/converter"
	"matka_backend/internal/model"
	"matka_backend/internal/repository"
	"matka_backend/internal/service"
	"matka_backend/internal/service/declaration"
	"matka_backend/internal/service/payout"
	"matka_backend/pkg/logger"
	"matka_backend/pkg/req"
	"matka_backend/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.DeclarationService
}

type Handler struct {
	serv service.DeclarationService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Preview POST /results/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PreviewRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	preview, err := converter.ToPreview(payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Preview(r.Context(), preview)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBreakdownResponse(*result))
}

// Declare POST /markets/{marketID}/results
func (h *Handler) Declare(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DeclareRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	decl, err := converter.ToDeclaration(chi.URLParam(r, "marketID"), payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	settlement, err := h.serv.Declare(r.Context(), decl)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToSettlementResponse(*settlement))
}

// GetResult GET /markets/{marketID}/results/{date}/{session}
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	date, err := converter.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.GetResult(r.Context(),
		chi.URLParam(r, "marketID"), date, model.Session(chi.URLParam(r, "session")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToResultResponse(*result))
}

// writeServiceError переводит доменные ошибки в HTTP статусы
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payout.ErrInvalidResult),
		errors.Is(err, declaration.ErrInvalidSession),
		errors.Is(err, declaration.ErrInvalidMarket),
		errors.Is(err, declaration.ErrInvalidDate),
		errors.Is(err, declaration.ErrInvalidTotals),
		errors.Is(err, declaration.ErrInvalidOpenMain):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, declaration.ErrNoOperator):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, declaration.ErrResultNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrAlreadyDeclared),
		errors.Is(err, declaration.ErrCloseDeclared),
		errors.Is(err, payout.ErrMissingOpenResult):
		resp.WriteError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
