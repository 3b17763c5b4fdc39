package service

import (
	"context"

	"algoclub/internal/domain/model"
	"algoclub/internal/domain/repository"
)

// PenaltyService totals the club's penalty table.
type PenaltyService struct {
	memberRepo repository.MemberRepository
}

func NewPenaltyService(memberRepo repository.MemberRepository) *PenaltyService {
	return &PenaltyService{memberRepo: memberRepo}
}

func (s *PenaltyService) Report(ctx context.Context) (*model.PenaltyReport, error) {
	records, err := s.memberRepo.Penalties(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.PenaltyReport{Records: records}
	for _, rec := range records {
		report.TotalPenalty += rec.Penalty
		report.TotalPaid += rec.Paid
	}
	// Computed once over the totals; upstream data may drive this negative
	// and it is passed through as-is.
	report.TotalUnpaid = report.TotalPenalty - report.TotalPaid
	return report, nil
}
