package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/repository"
)

type RankingService interface {
	// BuildRanking computes the full ranking for a period. limit < 1 falls
	// back to the configured default. The whole computation either succeeds
	// or fails; no partial ranking is ever returned.
	BuildRanking(ctx context.Context, period string, limit int) (*dto.RankingResponse, error)
	MemberScore(ctx context.Context, memberID uuid.UUID, period string) (*dto.MemberScoreResponse, error)
}

type rankingService struct {
	users        repository.UserRepository
	scores       repository.ScoreRepository
	defaultLimit int
	timeout      time.Duration
	now          func() time.Time
}

func NewRankingService(users repository.UserRepository, scores repository.ScoreRepository, defaultLimit int, timeout time.Duration) RankingService {
	if defaultLimit < 1 {
		defaultLimit = 50
	}
	return &rankingService{
		users:        users,
		scores:       scores,
		defaultLimit: defaultLimit,
		timeout:      timeout,
		now:          time.Now,
	}
}

func (s *rankingService) BuildRanking(ctx context.Context, period string, limit int) (*dto.RankingResponse, error) {
	if limit < 1 {
		limit = s.defaultLimit
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	interval := ResolvePeriod(period, s.now())

	members, err := s.users.FindParticipants(ctx)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]uuid.UUID, len(members))
	for i, member := range members {
		memberIDs[i] = member.ID
	}

	scores, err := s.scores.AggregateScores(ctx, memberIDs, interval.StartPtr(), interval.EndPtr())
	if err != nil {
		return nil, err
	}

	entries := make([]dto.RankingEntry, 0, len(members))
	for _, member := range members {
		score := scores[member.ID]
		entries = append(entries, dto.RankingEntry{
			MemberID:                 member.ID,
			DisplayName:              member.Name,
			Email:                    member.Email,
			ActivityPoints:           score.ActivityPoints,
			AdjustmentPoints:         score.AdjustmentPoints,
			TotalPoints:              score.Total(),
			ActivitiesCompletedCount: score.ActivitiesCompleted,
		})
	}

	// Total points descending; ties broken by member ID ascending so repeated
	// queries against unchanged data always order the same way.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].MemberID.String() < entries[j].MemberID.String()
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Position = i + 1
	}

	stats := dto.RankingStats{
		TotalMembers:  len(members),
		Period:        CanonicalPeriod(period),
		AveragePoints: averagePoints(entries),
	}
	if interval.Bounded {
		start := interval.Start.Format(time.RFC3339)
		end := interval.End.Format(time.RFC3339)
		stats.StartDate = &start
		stats.EndDate = &end
	}
	if len(entries) > 0 {
		top := entries[0]
		stats.TopPerformer = &top
	}

	return &dto.RankingResponse{Ranking: entries, Stats: stats}, nil
}

func (s *rankingService) MemberScore(ctx context.Context, memberID uuid.UUID, period string) (*dto.MemberScoreResponse, error) {
	interval := ResolvePeriod(period, s.now())

	scores, err := s.scores.AggregateScores(ctx, []uuid.UUID{memberID}, interval.StartPtr(), interval.EndPtr())
	if err != nil {
		return nil, err
	}

	score := scores[memberID]
	return &dto.MemberScoreResponse{
		MemberID:                 memberID,
		Period:                   CanonicalPeriod(period),
		ActivityPoints:           score.ActivityPoints,
		AdjustmentPoints:         score.AdjustmentPoints,
		TotalPoints:              score.Total(),
		ActivitiesCompletedCount: score.ActivitiesCompleted,
	}, nil
}

// averagePoints is the rounded mean over the returned (limited) entries only,
// not the full member population.
func averagePoints(entries []dto.RankingEntry) int {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, entry := range entries {
		sum += entry.TotalPoints
	}
	return int(math.Round(float64(sum) / float64(len(entries))))
}
