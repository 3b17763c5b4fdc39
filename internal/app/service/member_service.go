package service

import (
	"context"
	"errors"
	"fmt"

	"algoclub/internal/common"
	"algoclub/internal/domain/model"
	"algoclub/internal/domain/repository"
)

// MemberService backs the member area (my page).
type MemberService struct {
	memberRepo  repository.MemberRepository
	rankingRepo repository.RankingRepository
}

func NewMemberService(memberRepo repository.MemberRepository, rankingRepo repository.RankingRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo, rankingRepo: rankingRepo}
}

type MemberProfile struct {
	Member       *model.Member         `json:"member"`
	Registry     *model.RegistryRecord `json:"registry,omitempty"`
	RecentSolved []model.SolvedProblem `json:"recentSolved"`
}

// Profile assembles the caller's member page. A member without a stored
// profile, registry row or tracking handle still gets a page; those parts
// just come back empty.
func (s *MemberService) Profile(ctx context.Context, userID, name, email string) (*MemberProfile, error) {
	member, err := s.memberRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("memberService.Profile: %w", err)
		}
		member = &model.Member{ID: userID, Name: name, Email: email}
	}

	var registry *model.RegistryRecord
	if member.Email != "" {
		registry, err = s.memberRepo.FindRegistryByEmail(ctx, member.Email)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("memberService.Profile: %w", err)
		}
	}

	solved := []model.SolvedProblem{}
	if member.Handle != "" {
		recent, err := s.rankingRepo.RecentSolved(ctx)
		if err != nil {
			return nil, fmt.Errorf("memberService.Profile: %w", err)
		}
		for _, p := range recent {
			if p.Handle == member.Handle {
				solved = append(solved, p)
			}
		}
	}

	return &MemberProfile{Member: member, Registry: registry, RecentSolved: solved}, nil
}
