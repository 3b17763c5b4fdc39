package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"algoclub/internal/common"
	"algoclub/internal/domain/model"
	"algoclub/internal/platform/docstore"
)

const commentsCollection = "comments"

type CommentRepository interface {
	Add(ctx context.Context, comment model.NewComment) (string, error)
	// ListByQuestion returns every comment on a question, newest first.
	ListByQuestion(ctx context.Context, questionID string) ([]model.Comment, error)
	// Update replaces the comment content after verifying ownership against
	// the stored document.
	Update(ctx context.Context, id, content, callerID string) error
	// Delete removes the comment after the same ownership check.
	Delete(ctx context.Context, id, callerID string) error
}

type docCommentRepository struct {
	store  docstore.Store
	logger *slog.Logger
}

func NewCommentRepository(store docstore.Store, logger *slog.Logger) CommentRepository {
	return &docCommentRepository{store: store, logger: logger}
}

func (r *docCommentRepository) Add(ctx context.Context, comment model.NewComment) (string, error) {
	if comment.QuestionID == "" || comment.Content == "" || comment.Author == "" {
		return "", common.ErrBadRequest
	}

	id, err := r.store.Collection(commentsCollection).Add(ctx, map[string]interface{}{
		"questionId": comment.QuestionID,
		"author":     comment.Author,
		"writer":     comment.Writer,
		"content":    comment.Content,
		"createdAt":  docstore.ServerTimestamp,
	})
	if err != nil {
		r.logger.Error("comment create failed", "error", err)
		return "", fmt.Errorf("commentRepository.Add: %w", err)
	}
	return id, nil
}

func (r *docCommentRepository) ListByQuestion(ctx context.Context, questionID string) ([]model.Comment, error) {
	snaps, err := r.store.Collection(commentsCollection).
		Where("questionId", "==", questionID).
		OrderBy("createdAt", docstore.Desc).
		GetAll(ctx)
	if err != nil {
		r.logger.Error("comment list query failed", "questionId", questionID, "error", err)
		return nil, fmt.Errorf("commentRepository.ListByQuestion: %w", err)
	}

	comments := make([]model.Comment, 0, len(snaps))
	for _, snap := range snaps {
		var c model.Comment
		if err := snap.DataTo(&c); err != nil {
			return nil, fmt.Errorf("commentRepository.ListByQuestion decode %s: %w", snap.ID(), err)
		}
		c.ID = snap.ID()
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *docCommentRepository) Update(ctx context.Context, id, content, callerID string) error {
	doc := r.store.Collection(commentsCollection).Doc(id)

	if err := r.checkOwnership(ctx, doc, id, callerID); err != nil {
		return err
	}

	err := doc.Update(ctx, map[string]interface{}{
		"content":   content,
		"updatedAt": docstore.ServerTimestamp,
	})
	if err != nil {
		r.logger.Error("comment update failed", "id", id, "error", err)
		return fmt.Errorf("commentRepository.Update: %w", err)
	}
	return nil
}

func (r *docCommentRepository) Delete(ctx context.Context, id, callerID string) error {
	doc := r.store.Collection(commentsCollection).Doc(id)

	if err := r.checkOwnership(ctx, doc, id, callerID); err != nil {
		return err
	}

	if err := doc.Delete(ctx); err != nil {
		r.logger.Error("comment delete failed", "id", id, "error", err)
		return fmt.Errorf("commentRepository.Delete: %w", err)
	}
	return nil
}

// checkOwnership loads the comment at call time and compares its author
// with the caller, so a stale client cannot mutate through cached state.
func (r *docCommentRepository) checkOwnership(ctx context.Context, doc docstore.Document, id, callerID string) error {
	snap, err := doc.Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("comment %s: %w", id, common.ErrNotFound)
		}
		r.logger.Error("comment lookup failed", "id", id, "error", err)
		return fmt.Errorf("commentRepository ownership check: %w", err)
	}

	author, _ := snap.Data()["author"].(string)
	if author != callerID {
		return fmt.Errorf("comment %s is not owned by caller: %w", id, common.ErrForbidden)
	}
	return nil
}
