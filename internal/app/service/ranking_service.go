package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"algoclub/internal/domain/model"
	"algoclub/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const rankingCacheKey = "rankings:board"

// RankingService assembles the dashboard: three member rankings, the
// recent-solves feed and the cumulative solved counter. The five reads run
// concurrently and fail as one unit; there is no partial rendering.
type RankingService struct {
	rankingRepo repository.RankingRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// NewRankingService wires the aggregator. cache may be nil, in which case
// every call reads live from the store.
func NewRankingService(rankingRepo repository.RankingRepository, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *RankingService {
	return &RankingService{rankingRepo: rankingRepo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *RankingService) Board(ctx context.Context) (*model.RankingBoard, error) {
	if board := s.cached(ctx); board != nil {
		return board, nil
	}

	var board model.RankingBoard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, err := s.rankingRepo.TopByMetric(gctx, model.MetricRating)
		board.ByRating = entries
		return err
	})
	g.Go(func() error {
		entries, err := s.rankingRepo.TopByMetric(gctx, model.MetricSolvedDelta)
		board.BySolvedDelta = entries
		return err
	})
	g.Go(func() error {
		entries, err := s.rankingRepo.TopByMetric(gctx, model.MetricRatingDelta)
		board.ByRatingDelta = entries
		return err
	})
	g.Go(func() error {
		problems, err := s.rankingRepo.RecentSolved(gctx)
		board.RecentSolved = problems
		return err
	})
	g.Go(func() error {
		count, err := s.rankingRepo.SolvedCount(gctx)
		board.TotalSolved = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rankingService.Board: %w", err)
	}

	s.store(ctx, &board)
	return &board, nil
}

// cached returns the board snapshot from redis, or nil on a miss or any
// cache failure. Cache trouble degrades to a live read, never an error.
func (s *RankingService) cached(ctx context.Context) *model.RankingBoard {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, rankingCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("ranking cache read failed", "error", err)
		}
		return nil
	}

	board := &model.RankingBoard{}
	if err := json.Unmarshal(raw, board); err != nil {
		s.logger.Warn("ranking cache entry corrupt, discarding", "error", err)
		return nil
	}
	return board
}

func (s *RankingService) store(ctx context.Context, board *model.RankingBoard) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(board)
	if err != nil {
		s.logger.Warn("ranking cache encode failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, rankingCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("ranking cache write failed", "error", err)
	}
}
