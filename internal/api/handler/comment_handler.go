package handler

import (
	"encoding/json"
	"net/http"

	"algoclub/internal/api/middleware"
	"algoclub/internal/app/service"
	"algoclub/internal/common"

	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	boardService *service.BoardService
}

func NewCommentHandler(boardService *service.BoardService) *CommentHandler {
	return &CommentHandler{boardService: boardService}
}

func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Patch("/{commentID}", h.updateComment)
		authed.Delete("/{commentID}", h.deleteComment)
	})
}

func (h *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	commentID := chi.URLParam(r, "commentID")

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.boardService.UpdateComment(r.Context(), commentID, userID, req.Content); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": commentID})
}

func (h *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	commentID := chi.URLParam(r, "commentID")

	if err := h.boardService.DeleteComment(r.Context(), commentID, userID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": commentID})
}
