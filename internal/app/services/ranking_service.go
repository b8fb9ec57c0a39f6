package services

import (
	"context"
	"sort"
	"strings"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/scoring"
)

// RankingService derives leaderboard views over the roster and the scoring
// engine.
type RankingService struct {
	roster repositories.RosterStore
}

// NewRankingService creates a new ranking service instance.
func NewRankingService(roster repositories.RosterStore) *RankingService {
	return &RankingService{roster: roster}
}

// GetRankings loads the roster and returns the filtered, sorted, limited
// leaderboard.
func (s *RankingService) GetRankings(ctx context.Context, req dto.RankingRequest) ([]dto.RankedStudent, error) {
	students, err := s.roster.GetAllWithProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(students, req.RankingFilter, req.Limit)
}

// Rank filters, scores, and sorts the given students, then truncates to
// limit (0 means unlimited). The sort is stable: students with equal scores
// keep their input order, which upstream uses to reflect upload recency.
func Rank(students []models.StudentWithProfile, filter dto.RankingFilter, limit int) ([]dto.RankedStudent, error) {
	if filter.Year != "" && filter.Branch == "" {
		return nil, apperrors.ErrInvalidFilterCombination
	}

	ranked := make([]dto.RankedStudent, 0, len(students))
	for _, swp := range students {
		if !matchesFilter(swp.Student, filter) {
			continue
		}
		ranked = append(ranked, dto.RankedStudent{
			Student:       swp.Student,
			Score:         scoring.Score(swp.Profile),
			TotalProblems: scoring.TotalProblems(swp.Profile),
			TotalContests: scoring.TotalContests(swp.Profile),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked, nil
}

func matchesFilter(s models.Student, filter dto.RankingFilter) bool {
	if filter.Branch != "" && s.Branch != filter.Branch {
		return false
	}
	if filter.Year != "" && s.Year != filter.Year {
		return false
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.RollNumber), needle) {
			return false
		}
	}

	return true
}
