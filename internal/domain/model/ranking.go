package model

import "time"

// RankMetric discriminates which ranking a RankEntry belongs to. Exactly
// one metric value is populated per entry.
type RankMetric string

const (
	MetricRating      RankMetric = "rating"
	MetricSolvedDelta RankMetric = "solved_diff"
	MetricRatingDelta RankMetric = "rating_diff"
)

// RankEntry is one row of a ranking, tagged by the metric it was ranked
// on. Handle is the member's id on the tracking site.
type RankEntry struct {
	Handle string     `json:"boj_id"`
	Tier   string     `json:"tier,omitempty"`
	Name   string     `json:"name,omitempty"`
	Metric RankMetric `json:"metric"`
	Value  int        `json:"value"`
}

// SolvedProblem is one row of the recent-solves feed.
type SolvedProblem struct {
	Handle        string    `json:"boj_id" firestore:"boj_id"`
	ProblemNumber string    `json:"p_num" firestore:"p_num"`
	Tier          int       `json:"p_tier" firestore:"p_tier"`
	SolvedAt      time.Time `json:"p_time" firestore:"p_time"`
}

// RankingBoard is the combined dashboard view model.
type RankingBoard struct {
	ByRating      []RankEntry     `json:"byRating"`
	BySolvedDelta []RankEntry     `json:"bySolvedDelta"`
	ByRatingDelta []RankEntry     `json:"byRatingDelta"`
	RecentSolved  []SolvedProblem `json:"recentSolved"`
	TotalSolved   int             `json:"totalSolved"`
}
