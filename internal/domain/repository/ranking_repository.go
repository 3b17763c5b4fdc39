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

const (
	memberStateCollection = "newstate"
	problemsCollection    = "problems"
	informationCollection = "information"
	solvedCounterDoc      = "solvedProblems"

	rankingSize      = 10
	recentSolvedSize = 50
)

type RankingRepository interface {
	// TopByMetric returns the top members ordered descending by the given
	// metric. Members whose state row lacks the metric field are excluded.
	TopByMetric(ctx context.Context, metric model.RankMetric) ([]model.RankEntry, error)
	// RecentSolved returns the latest solved problems across the club.
	RecentSolved(ctx context.Context) ([]model.SolvedProblem, error)
	// SolvedCount reads the cumulative solved-problem counter. A missing
	// counter document reads as zero.
	SolvedCount(ctx context.Context) (int, error)
}

type docRankingRepository struct {
	store  docstore.Store
	logger *slog.Logger
}

func NewRankingRepository(store docstore.Store, logger *slog.Logger) RankingRepository {
	return &docRankingRepository{store: store, logger: logger}
}

func metricField(metric model.RankMetric) (string, error) {
	switch metric {
	case model.MetricRating:
		return "rating", nil
	case model.MetricSolvedDelta:
		return "full_solved_diff", nil
	case model.MetricRatingDelta:
		return "rating_diff", nil
	}
	return "", fmt.Errorf("unknown rank metric %q: %w", metric, common.ErrBadRequest)
}

func (r *docRankingRepository) TopByMetric(ctx context.Context, metric model.RankMetric) ([]model.RankEntry, error) {
	field, err := metricField(metric)
	if err != nil {
		return nil, err
	}

	snaps, err := r.store.Collection(memberStateCollection).
		OrderBy(field, docstore.Desc).
		Limit(rankingSize).
		GetAll(ctx)
	if err != nil {
		r.logger.Error("ranking query failed", "metric", metric, "error", err)
		return nil, fmt.Errorf("rankingRepository.TopByMetric %s: %w", metric, err)
	}

	entries := make([]model.RankEntry, 0, len(snaps))
	for _, snap := range snaps {
		data := snap.Data()
		value, ok := intField(data, field)
		if !ok {
			continue
		}
		handle, _ := data["boj_id"].(string)
		tier, _ := data["tier"].(string)
		name, _ := data["name"].(string)
		entries = append(entries, model.RankEntry{
			Handle: handle,
			Tier:   tier,
			Name:   name,
			Metric: metric,
			Value:  value,
		})
	}
	return entries, nil
}

func (r *docRankingRepository) RecentSolved(ctx context.Context) ([]model.SolvedProblem, error) {
	snaps, err := r.store.Collection(problemsCollection).
		OrderBy("p_time", docstore.Desc).
		Limit(recentSolvedSize).
		GetAll(ctx)
	if err != nil {
		r.logger.Error("recent solved query failed", "error", err)
		return nil, fmt.Errorf("rankingRepository.RecentSolved: %w", err)
	}

	problems := make([]model.SolvedProblem, 0, len(snaps))
	for _, snap := range snaps {
		var p model.SolvedProblem
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("rankingRepository.RecentSolved decode %s: %w", snap.ID(), err)
		}
		problems = append(problems, p)
	}
	return problems, nil
}

func (r *docRankingRepository) SolvedCount(ctx context.Context) (int, error) {
	snap, err := r.store.Collection(informationCollection).Doc(solvedCounterDoc).Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			r.logger.Warn("solved counter document missing")
			return 0, nil
		}
		r.logger.Error("solved counter read failed", "error", err)
		return 0, fmt.Errorf("rankingRepository.SolvedCount: %w", err)
	}

	count, _ := intField(snap.Data(), "problem_cnt")
	return count, nil
}

func intField(data map[string]interface{}, key string) (int, bool) {
	switch n := data[key].(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
