package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"algoclub/internal/domain/model"
	"algoclub/internal/platform/docstore/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopByMetricReturnsDescendingTaggedEntries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	for i := 0; i < 12; i++ {
		_, err := store.Collection("newstate").Add(ctx, map[string]interface{}{
			"boj_id": fmt.Sprintf("member%02d", i),
			"tier":   "gold",
			"name":   fmt.Sprintf("Member %02d", i),
			"rating": 1000 + i*10,
		})
		require.NoError(t, err)
	}
	repo := NewRankingRepository(store, testLogger())

	entries, err := repo.TopByMetric(ctx, model.MetricRating)
	require.NoError(t, err)
	require.Len(t, entries, 10)
	assert.Equal(t, "member11", entries[0].Handle)
	assert.Equal(t, 1110, entries[0].Value)
	assert.Equal(t, model.MetricRating, entries[0].Metric)
	assert.Equal(t, "member02", entries[9].Handle)
}

func TestTopByMetricExcludesRowsMissingTheMetric(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	_, err := store.Collection("newstate").Add(ctx, map[string]interface{}{
		"boj_id": "has-delta", "rating_diff": 42,
	})
	require.NoError(t, err)
	_, err = store.Collection("newstate").Add(ctx, map[string]interface{}{
		"boj_id": "no-delta", "rating": 2000,
	})
	require.NoError(t, err)
	repo := NewRankingRepository(store, testLogger())

	entries, err := repo.TopByMetric(ctx, model.MetricRatingDelta)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "has-delta", entries[0].Handle)
	assert.Equal(t, model.MetricRatingDelta, entries[0].Metric)
	assert.Equal(t, 42, entries[0].Value)
}

func TestTopByMetricRejectsUnknownMetric(t *testing.T) {
	repo := NewRankingRepository(memstore.New(), testLogger())

	_, err := repo.TopByMetric(context.Background(), model.RankMetric("elo"))
	assert.Error(t, err)
}

func TestRecentSolvedNewestFirstCappedAtFifty(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	for i := 0; i < 60; i++ {
		_, err := store.Collection("problems").Add(ctx, map[string]interface{}{
			"boj_id": "alice",
			"p_num":  fmt.Sprintf("%d", 1000+i),
			"p_tier": 5,
			"p_time": time.Date(2026, 1, 1, 0, 0, i, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	repo := NewRankingRepository(store, testLogger())

	problems, err := repo.RecentSolved(ctx)
	require.NoError(t, err)
	require.Len(t, problems, 50)
	assert.Equal(t, "1059", problems[0].ProblemNumber)
	assert.Equal(t, "1010", problems[49].ProblemNumber)
}

func TestSolvedCountReadsCounterDocument(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Collection("information").Doc("solvedProblems").Set(ctx, map[string]interface{}{
		"problem_cnt": 1234,
	}, false))
	repo := NewRankingRepository(store, testLogger())

	count, err := repo.SolvedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1234, count)
}

func TestSolvedCountMissingCounterReadsZero(t *testing.T) {
	repo := NewRankingRepository(memstore.New(), testLogger())

	count, err := repo.SolvedCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
