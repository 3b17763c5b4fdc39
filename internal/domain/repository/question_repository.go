package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"algoclub/internal/common"
	"algoclub/internal/domain/model"
	"algoclub/internal/platform/docstore"
)

const QuestionsPerPage = 10

const questionsCollection = "questions"

type QuestionRepository interface {
	// List returns one page of the board, newest first, optionally
	// restricted to a single problem number. A filter that does not parse
	// as an integer yields an empty page, not an error.
	List(ctx context.Context, page int, problemNumber string) ([]model.QuestionSummary, model.PaginationInfo, error)
	FindByID(ctx context.Context, id string) (*model.Question, error)
	Create(ctx context.Context, question model.NewQuestion) (string, error)
	// Update merges the patch into the question after verifying that
	// callerID matches the stored author.
	Update(ctx context.Context, id, callerID string, patch model.QuestionPatch) error
}

type docQuestionRepository struct {
	store  docstore.Store
	logger *slog.Logger
}

func NewQuestionRepository(store docstore.Store, logger *slog.Logger) QuestionRepository {
	return &docQuestionRepository{store: store, logger: logger}
}

func (r *docQuestionRepository) List(ctx context.Context, page int, problemNumber string) ([]model.QuestionSummary, model.PaginationInfo, error) {
	if page < 1 {
		page = 1
	}

	questions := r.store.Collection(questionsCollection)

	var base docstore.Query
	if problemNumber != "" {
		pnum, err := strconv.Atoi(problemNumber)
		if err != nil {
			// Deliberate fallback: an unparsable filter is an empty board,
			// not a failed request.
			return []model.QuestionSummary{}, model.PaginationInfo{CurrentPage: 1, TotalPages: 0, PageSize: QuestionsPerPage}, nil
		}
		base = questions.Where("p_num", "==", pnum).OrderBy("createdAt", docstore.Desc)
	} else {
		base = questions.OrderBy("createdAt", docstore.Desc)
	}

	total, err := base.Count(ctx)
	if err != nil {
		r.logger.Error("question count query failed", "error", err)
		return nil, model.PaginationInfo{}, fmt.Errorf("questionRepository.List count: %w", err)
	}

	// Cursor discovery: re-run the base query up to the end of the previous
	// page and continue after its last document. Each jump to page k costs
	// O(k * pageSize) reads, which is acceptable at club scale.
	pageQuery := base.Limit(QuestionsPerPage)
	if page > 1 {
		prior, err := base.Limit((page - 1) * QuestionsPerPage).GetAll(ctx)
		if err != nil {
			r.logger.Error("question cursor query failed", "error", err)
			return nil, model.PaginationInfo{}, fmt.Errorf("questionRepository.List cursor: %w", err)
		}
		if len(prior) > 0 {
			pageQuery = base.StartAfter(prior[len(prior)-1]).Limit(QuestionsPerPage)
		}
	}

	snaps, err := pageQuery.GetAll(ctx)
	if err != nil {
		r.logger.Error("question page query failed", "error", err)
		return nil, model.PaginationInfo{}, fmt.Errorf("questionRepository.List page: %w", err)
	}

	summaries := make([]model.QuestionSummary, 0, len(snaps))
	for _, snap := range snaps {
		var s model.QuestionSummary
		if err := snap.DataTo(&s); err != nil {
			return nil, model.PaginationInfo{}, fmt.Errorf("questionRepository.List decode %s: %w", snap.ID(), err)
		}
		s.ID = snap.ID()
		summaries = append(summaries, s)
	}

	info := model.PaginationInfo{
		CurrentPage: page,
		TotalPages:  int((total + QuestionsPerPage - 1) / QuestionsPerPage),
		PageSize:    QuestionsPerPage,
	}
	return summaries, info, nil
}

func (r *docQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	snap, err := r.store.Collection(questionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		r.logger.Error("question lookup failed", "id", id, "error", err)
		return nil, fmt.Errorf("questionRepository.FindByID: %w", err)
	}

	question := &model.Question{}
	if err := snap.DataTo(question); err != nil {
		return nil, fmt.Errorf("questionRepository.FindByID decode: %w", err)
	}
	question.ID = snap.ID()
	return question, nil
}

func (r *docQuestionRepository) Create(ctx context.Context, question model.NewQuestion) (string, error) {
	if question.Title == "" || question.Content == "" || question.Author == "" {
		return "", common.ErrBadRequest
	}

	// solved always starts false; whatever the caller sent never reaches
	// the store.
	id, err := r.store.Collection(questionsCollection).Add(ctx, map[string]interface{}{
		"p_num":        question.ProblemNumber,
		"title":        question.Title,
		"content":      question.Content,
		"codeLanguage": question.CodeLanguage,
		"codespace":    question.Codespace,
		"author":       question.Author,
		"writer":       question.Writer,
		"solved":       false,
		"createdAt":    docstore.ServerTimestamp,
	})
	if err != nil {
		r.logger.Error("question create failed", "error", err)
		return "", fmt.Errorf("questionRepository.Create: %w", err)
	}
	return id, nil
}

func (r *docQuestionRepository) Update(ctx context.Context, id, callerID string, patch model.QuestionPatch) error {
	doc := r.store.Collection(questionsCollection).Doc(id)

	snap, err := doc.Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("question %s: %w", id, common.ErrNotFound)
		}
		r.logger.Error("question lookup failed", "id", id, "error", err)
		return fmt.Errorf("questionRepository.Update get: %w", err)
	}

	// Ownership is checked against the freshly loaded document, never a
	// caller-supplied copy.
	author, _ := snap.Data()["author"].(string)
	if author != callerID {
		return fmt.Errorf("question %s is not owned by caller: %w", id, common.ErrForbidden)
	}

	fields := map[string]interface{}{}
	if patch.ProblemNumber != nil {
		fields["p_num"] = *patch.ProblemNumber
	}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if patch.CodeLanguage != nil {
		fields["codeLanguage"] = *patch.CodeLanguage
	}
	if patch.Codespace != nil {
		fields["codespace"] = *patch.Codespace
	}
	if patch.Solved != nil {
		fields["solved"] = *patch.Solved
	}
	if len(fields) == 0 {
		return nil
	}

	if err := doc.Update(ctx, fields); err != nil {
		r.logger.Error("question update failed", "id", id, "error", err)
		return fmt.Errorf("questionRepository.Update: %w", err)
	}
	return nil
}
