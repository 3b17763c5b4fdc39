package handler

import (
	"net/http"

	"algoclub/internal/app/service"
	"algoclub/internal/common"

	"github.com/go-chi/chi/v5"
)

type RankingHandler struct {
	rankingService *service.RankingService
}

func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getBoard)
}

func (h *RankingHandler) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.rankingService.Board(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, board)
}
