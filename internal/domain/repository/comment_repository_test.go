package repository

import (
	"context"
	"errors"
	"testing"

	"algoclub/internal/common"
	"algoclub/internal/domain/model"
	"algoclub/internal/platform/docstore/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addComment(t *testing.T, repo CommentRepository, questionID, author, content string) string {
	t.Helper()
	id, err := repo.Add(context.Background(), model.NewComment{
		QuestionID: questionID,
		Author:     author,
		Writer:     "Writer of " + author,
		Content:    content,
	})
	require.NoError(t, err)
	return id
}

func TestListByQuestionNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(memstore.New(), testLogger())

	addComment(t, repo, "q1", "u1", "first")
	addComment(t, repo, "q1", "u2", "second")
	addComment(t, repo, "q2", "u1", "other question")

	comments, err := repo.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)

	// A freshly added comment lands on top.
	addComment(t, repo, "q1", "u3", "third")
	comments, err = repo.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Content)
}

func TestUpdateByOwnerReplacesContent(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(memstore.New(), testLogger())

	id := addComment(t, repo, "q1", "u1", "original")

	require.NoError(t, repo.Update(ctx, id, "edited", "u1"))

	comments, err := repo.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "edited", comments[0].Content)
	assert.NotNil(t, comments[0].UpdatedAt)
}

func TestUpdateByNonOwnerIsForbiddenAndDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(memstore.New(), testLogger())

	id := addComment(t, repo, "q1", "u1", "original")

	err := repo.Update(ctx, id, "hijacked", "u2")
	assert.True(t, errors.Is(err, common.ErrForbidden))

	comments, err := repo.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "original", comments[0].Content)
	assert.Nil(t, comments[0].UpdatedAt)
}

func TestDeleteByOwnerRemovesComment(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(memstore.New(), testLogger())

	id := addComment(t, repo, "q1", "u1", "bye")

	require.NoError(t, repo.Delete(ctx, id, "u1"))

	comments, err := repo.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteByNonOwnerIsForbiddenAndKeepsRow(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(memstore.New(), testLogger())

	id := addComment(t, repo, "q1", "u1", "keep me")

	err := repo.Delete(ctx, id, "u2")
	assert.True(t, errors.Is(err, common.ErrForbidden))

	comments, err := repo.ListByQuestion(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "keep me", comments[0].Content)
}

func TestUpdateMissingCommentIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(memstore.New(), testLogger())

	err := repo.Update(ctx, "missing", "x", "u1")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	err = repo.Delete(ctx, "missing", "u1")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
