package service

import (
	"context"
	"fmt"

	"algoclub/internal/common"
	"algoclub/internal/domain/model"
	"algoclub/internal/domain/repository"
)

// BoardService orchestrates the question board and its comments.
type BoardService struct {
	questionRepo repository.QuestionRepository
	commentRepo  repository.CommentRepository
}

func NewBoardService(questionRepo repository.QuestionRepository, commentRepo repository.CommentRepository) *BoardService {
	return &BoardService{questionRepo: questionRepo, commentRepo: commentRepo}
}

type QuestionListResponse struct {
	Questions      []model.QuestionSummary `json:"questions"`
	PaginationInfo model.PaginationInfo    `json:"paginationInfo"`
}

func (s *BoardService) ListQuestions(ctx context.Context, page int, problemNumber string) (*QuestionListResponse, error) {
	questions, info, err := s.questionRepo.List(ctx, page, problemNumber)
	if err != nil {
		return nil, err
	}
	return &QuestionListResponse{Questions: questions, PaginationInfo: info}, nil
}

func (s *BoardService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	return s.questionRepo.FindByID(ctx, id)
}

type CreateQuestionRequest struct {
	ProblemNumber int     `json:"p_num"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	CodeLanguage  string  `json:"codeLanguage"`
	Codespace     *string `json:"codespace"`
}

func (s *BoardService) CreateQuestion(ctx context.Context, callerID, callerName string, req CreateQuestionRequest) (string, error) {
	if req.Title == "" || req.Content == "" || req.ProblemNumber <= 0 {
		return "", common.ErrBadRequest
	}
	if !model.IsValidCodeLanguage(req.CodeLanguage) {
		return "", fmt.Errorf("unknown code language %q: %w", req.CodeLanguage, common.ErrBadRequest)
	}

	return s.questionRepo.Create(ctx, model.NewQuestion{
		ProblemNumber: req.ProblemNumber,
		Title:         req.Title,
		Content:       req.Content,
		CodeLanguage:  req.CodeLanguage,
		Codespace:     req.Codespace,
		Author:        callerID,
		Writer:        callerName,
	})
}

func (s *BoardService) UpdateQuestion(ctx context.Context, id, callerID string, patch model.QuestionPatch) error {
	if patch.CodeLanguage != nil && !model.IsValidCodeLanguage(*patch.CodeLanguage) {
		return fmt.Errorf("unknown code language %q: %w", *patch.CodeLanguage, common.ErrBadRequest)
	}
	return s.questionRepo.Update(ctx, id, callerID, patch)
}

func (s *BoardService) ListComments(ctx context.Context, questionID string) ([]model.Comment, error) {
	return s.commentRepo.ListByQuestion(ctx, questionID)
}

// AddComment attaches a comment to an existing question; commenting on a
// missing question is a not-found, not an orphaned row.
func (s *BoardService) AddComment(ctx context.Context, questionID, callerID, callerName, content string) (string, error) {
	if content == "" {
		return "", common.ErrBadRequest
	}
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return "", err
	}

	return s.commentRepo.Add(ctx, model.NewComment{
		QuestionID: questionID,
		Author:     callerID,
		Writer:     callerName,
		Content:    content,
	})
}

func (s *BoardService) UpdateComment(ctx context.Context, id, callerID, content string) error {
	if content == "" {
		return common.ErrBadRequest
	}
	return s.commentRepo.Update(ctx, id, content, callerID)
}

func (s *BoardService) DeleteComment(ctx context.Context, id, callerID string) error {
	return s.commentRepo.Delete(ctx, id, callerID)
}
