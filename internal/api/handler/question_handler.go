package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"algoclub/internal/api/middleware"
	"algoclub/internal/app/service"
	"algoclub/internal/common"
	"algoclub/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	boardService *service.BoardService
}

func NewQuestionHandler(boardService *service.BoardService) *QuestionHandler {
	return &QuestionHandler{boardService: boardService}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuestions)                         // GET /api/v1/questions?page=&p_num=
	r.Get("/{questionID}", h.getQuestion)               // GET /api/v1/questions/{id}
	r.Get("/{questionID}/comments", h.listComments)     // GET /api/v1/questions/{id}/comments

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/", h.createQuestion)
		authed.Patch("/{questionID}", h.updateQuestion)
		authed.Post("/{questionID}/comments", h.addComment)
	})
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	problemNumber := r.URL.Query().Get("p_num")

	resp, err := h.boardService.ListQuestions(r.Context(), page, problemNumber)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	question, err := h.boardService.GetQuestion(r.Context(), questionID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	userName, _ := middleware.GetUserNameFromContext(r.Context())

	var req service.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := h.boardService.CreateQuestion(r.Context(), userID, userName, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *QuestionHandler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	questionID := chi.URLParam(r, "questionID")

	var patch model.QuestionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.boardService.UpdateQuestion(r.Context(), questionID, userID, patch); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": questionID})
}

func (h *QuestionHandler) listComments(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	comments, err := h.boardService.ListComments(r.Context(), questionID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *QuestionHandler) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	userName, _ := middleware.GetUserNameFromContext(r.Context())
	questionID := chi.URLParam(r, "questionID")

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := h.boardService.AddComment(r.Context(), questionID, userID, userName, req.Content)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]string{"id": id})
}
