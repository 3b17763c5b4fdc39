package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"algoclub/internal/api"
	"algoclub/internal/app/service"
	"algoclub/internal/common/security"
	"algoclub/internal/domain/model"
	"algoclub/internal/domain/repository"
	"algoclub/internal/platform/config"
	"algoclub/internal/platform/docstore/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, rawToken string) (*service.GoogleIdentity, error) {
	return &service.GoogleIdentity{Subject: "stub", Email: "stub@club.dev"}, nil
}

func newTestServer(t *testing.T) (http.Handler, *memstore.Store) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New()

	questionRepo := repository.NewQuestionRepository(store, logger)
	commentRepo := repository.NewCommentRepository(store, logger)
	rankingRepo := repository.NewRankingRepository(store, logger)
	memberRepo := repository.NewMemberRepository(store, logger)

	router := api.NewRouter(
		service.NewAuthService(stubVerifier{}, memberRepo),
		service.NewBoardService(questionRepo, commentRepo),
		service.NewRankingService(rankingRepo, nil, time.Minute, logger),
		service.NewPenaltyService(memberRepo),
		service.NewMemberService(memberRepo, rankingRepo),
	)
	return router, store
}

func bearerToken(t *testing.T, userID, name, email string) string {
	t.Helper()
	token, err := security.GenerateToken(userID, name, email)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateQuestionRequiresAuth(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/questions", "", map[string]interface{}{
		"p_num": 1000, "title": "A", "content": "B", "codeLanguage": "Python 3",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateQuestionIgnoresSolvedInPayload(t *testing.T) {
	router, _ := newTestServer(t)
	auth := bearerToken(t, "u1", "Alice", "alice@club.dev")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/questions", auth, map[string]interface{}{
		"p_num": 1000, "title": "A", "content": "B", "codeLanguage": "Python 3",
		"solved": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created["id"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/questions/"+created["id"], "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var question model.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &question))
	assert.False(t, question.Solved)
	assert.Equal(t, "u1", question.Author)
	assert.Equal(t, "Alice", question.Writer)
}

func TestCreateQuestionRejectsUnknownLanguage(t *testing.T) {
	router, _ := newTestServer(t)
	auth := bearerToken(t, "u1", "Alice", "alice@club.dev")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/questions", auth, map[string]interface{}{
		"p_num": 1000, "title": "A", "content": "B", "codeLanguage": "Brainfuck",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListQuestionsPagination(t *testing.T) {
	router, _ := newTestServer(t)
	auth := bearerToken(t, "u1", "Alice", "alice@club.dev")

	for i := 0; i < 12; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/questions", auth, map[string]interface{}{
			"p_num": 1000 + i, "title": "Q", "content": "B", "codeLanguage": "Go",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/questions?page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.QuestionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 2)
	assert.Equal(t, 2, resp.PaginationInfo.CurrentPage)
	assert.Equal(t, 2, resp.PaginationInfo.TotalPages)
	assert.Equal(t, 10, resp.PaginationInfo.PageSize)
}

func TestListQuestionsUnparsableFilter(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/questions?p_num=notanumber", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.QuestionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Questions)
	assert.Equal(t, 0, resp.PaginationInfo.TotalPages)
}

func TestGetQuestionMissingIs404(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/questions/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateQuestionByNonOwnerIs403(t *testing.T) {
	router, _ := newTestServer(t)
	owner := bearerToken(t, "u1", "Alice", "alice@club.dev")
	intruder := bearerToken(t, "u2", "Bob", "bob@club.dev")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/questions", owner, map[string]interface{}{
		"p_num": 1000, "title": "A", "content": "B", "codeLanguage": "Go",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/questions/"+created["id"], intruder, map[string]interface{}{
		"solved": true,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/api/v1/questions/"+created["id"], owner, map[string]interface{}{
		"solved": true,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCommentLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestServer(t)
	owner := bearerToken(t, "u1", "Alice", "alice@club.dev")
	other := bearerToken(t, "u2", "Bob", "bob@club.dev")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/questions", owner, map[string]interface{}{
		"p_num": 1000, "title": "A", "content": "B", "codeLanguage": "Go",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var question map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &question))
	questionPath := "/api/v1/questions/" + question["id"] + "/comments"

	rec = doJSON(t, router, http.MethodPost, questionPath, other, map[string]string{"content": "try BFS"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var comment map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))

	// Commenting on a question that does not exist is a 404.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/questions/ghost/comments", other, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, questionPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []model.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "try BFS", comments[0].Content)

	// Only the comment's author may edit or delete it.
	rec = doJSON(t, router, http.MethodPatch, "/api/v1/comments/"+comment["id"], owner, map[string]string{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/comments/"+comment["id"], other, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, questionPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	comments = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	assert.Empty(t, comments)
}

func TestRankingAndPenaltyEndpoints(t *testing.T) {
	router, store := newTestServer(t)
	ctx := context.Background()

	_, err := store.Collection("newstate").Add(ctx, map[string]interface{}{
		"boj_id": "alice", "rating": 2000, "tier": "gold", "name": "Alice",
	})
	require.NoError(t, err)
	_, err = store.Collection("userData").Add(ctx, map[string]interface{}{
		"boj_id": "alice", "name": "Alice", "penalty": 3000, "paid": 1000,
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/rankings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var board model.RankingBoard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board.ByRating, 1)
	assert.Equal(t, "alice", board.ByRating[0].Handle)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/penalties", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report model.PenaltyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2000, report.TotalUnpaid)
}
