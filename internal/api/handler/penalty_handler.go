package handler

import (
	"net/http"

	"algoclub/internal/app/service"
	"algoclub/internal/common"

	"github.com/go-chi/chi/v5"
)

type PenaltyHandler struct {
	penaltyService *service.PenaltyService
}

func NewPenaltyHandler(penaltyService *service.PenaltyService) *PenaltyHandler {
	return &PenaltyHandler{penaltyService: penaltyService}
}

func (h *PenaltyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getReport)
}

func (h *PenaltyHandler) getReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.penaltyService.Report(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, report)
}
