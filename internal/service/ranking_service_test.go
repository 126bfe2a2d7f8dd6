package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/model"
	"sandalo.app/clubpoints/internal/repository"
)

// fakeUserRepo backs the service tests in this package with an in-memory
// user set. Lookups miss with gorm.ErrRecordNotFound so callers exercise
// the same error paths the real repository produces.
type fakeUserRepo struct {
	participants []model.User
	err          error

	created []model.User
	updated []model.User
	deleted []uuid.UUID
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.created = append(f.created, *user)
	f.participants = append(f.participants, *user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for i := range f.participants {
		if f.participants[i].ID == id {
			user := f.participants[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for i := range f.participants {
		if f.participants[i].Email == email {
			user := f.participants[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	return f.participants, int64(len(f.participants)), nil
}

func (f *fakeUserRepo) FindParticipants(ctx context.Context) ([]model.User, error) {
	return f.participants, f.err
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	f.updated = append(f.updated, *user)
	for i := range f.participants {
		if f.participants[i].ID == user.ID {
			f.participants[i] = *user
		}
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeScoreRepo struct {
	scores map[uuid.UUID]repository.MemberScore
	err    error

	lastStart *time.Time
	lastEnd   *time.Time
	lastIDs   []uuid.UUID
}

func (f *fakeScoreRepo) AggregateScores(ctx context.Context, userIDs []uuid.UUID, start, end *time.Time) (map[uuid.UUID]repository.MemberScore, error) {
	f.lastIDs = userIDs
	f.lastStart = start
	f.lastEnd = end
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uuid.UUID]repository.MemberScore, len(userIDs))
	for _, id := range userIDs {
		if score, ok := f.scores[id]; ok {
			out[id] = score
		}
	}
	return out, nil
}

// orderedID builds UUIDs whose string form sorts with n, so tie-break
// assertions stay readable.
func orderedID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func participant(id uuid.UUID, name string) model.User {
	return model.User{ID: id, Name: name, Email: name + "@club.test", Role: model.RoleParticipant}
}

func newTestRankingService(users *fakeUserRepo, scores repository.ScoreRepository, defaultLimit int) *rankingService {
	svc := NewRankingService(users, scores, defaultLimit, 0).(*rankingService)
	svc.now = func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestBuildRankingSortsByTotalDescending(t *testing.T) {
	ana, bruno, carla := orderedID(1), orderedID(2), orderedID(3)
	users := &fakeUserRepo{participants: []model.User{
		participant(ana, "ana"),
		participant(bruno, "bruno"),
		participant(carla, "carla"),
	}}
	scores := &fakeScoreRepo{scores: map[uuid.UUID]repository.MemberScore{
		ana:   {ActivityPoints: 30, AdjustmentPoints: -5, ActivitiesCompleted: 2},
		bruno: {ActivityPoints: 40, ActivitiesCompleted: 1},
		carla: {ActivityPoints: 10, AdjustmentPoints: 20, ActivitiesCompleted: 1},
	}}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 0)
	require.NoError(t, err)

	require.Len(t, result.Ranking, 3)
	assert.Equal(t, "bruno", result.Ranking[0].DisplayName)
	assert.Equal(t, 40, result.Ranking[0].TotalPoints)
	assert.Equal(t, "carla", result.Ranking[1].DisplayName)
	assert.Equal(t, 30, result.Ranking[1].TotalPoints)
	assert.Equal(t, "ana", result.Ranking[2].DisplayName)
	assert.Equal(t, 25, result.Ranking[2].TotalPoints)
}

func TestBuildRankingSplitsPointSources(t *testing.T) {
	ana := orderedID(1)
	users := &fakeUserRepo{participants: []model.User{participant(ana, "ana")}}
	scores := &fakeScoreRepo{scores: map[uuid.UUID]repository.MemberScore{
		ana: {ActivityPoints: 30, AdjustmentPoints: -5, ActivitiesCompleted: 2},
	}}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 0)
	require.NoError(t, err)

	entry := result.Ranking[0]
	assert.Equal(t, 30, entry.ActivityPoints)
	assert.Equal(t, -5, entry.AdjustmentPoints)
	assert.Equal(t, 25, entry.TotalPoints)
	assert.Equal(t, 2, entry.ActivitiesCompletedCount)
}

func TestBuildRankingBreaksTiesByMemberID(t *testing.T) {
	first, second := orderedID(1), orderedID(2)
	// Register in reverse so the order must come from the tie-break, not
	// from the participant listing.
	users := &fakeUserRepo{participants: []model.User{
		participant(second, "later"),
		participant(first, "earlier"),
	}}
	scores := &fakeScoreRepo{scores: map[uuid.UUID]repository.MemberScore{
		first:  {ActivityPoints: 10},
		second: {ActivityPoints: 10},
	}}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 0)
	require.NoError(t, err)

	assert.Equal(t, first, result.Ranking[0].MemberID)
	assert.Equal(t, second, result.Ranking[1].MemberID)
}

func TestBuildRankingIncludesZeroScoreMembers(t *testing.T) {
	active, idle := orderedID(1), orderedID(2)
	users := &fakeUserRepo{participants: []model.User{
		participant(active, "active"),
		participant(idle, "idle"),
	}}
	scores := &fakeScoreRepo{scores: map[uuid.UUID]repository.MemberScore{
		active: {ActivityPoints: 15, ActivitiesCompleted: 1},
	}}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 0)
	require.NoError(t, err)

	require.Len(t, result.Ranking, 2)
	assert.Equal(t, idle, result.Ranking[1].MemberID)
	assert.Equal(t, 0, result.Ranking[1].TotalPoints)
	assert.Equal(t, 0, result.Ranking[1].ActivitiesCompletedCount)
}

func TestBuildRankingAppliesLimitAndPositions(t *testing.T) {
	users := &fakeUserRepo{}
	scoreMap := make(map[uuid.UUID]repository.MemberScore)
	for i := 1; i <= 5; i++ {
		id := orderedID(i)
		users.participants = append(users.participants, participant(id, fmt.Sprintf("member%d", i)))
		scoreMap[id] = repository.MemberScore{ActivityPoints: 100 - i}
	}
	scores := &fakeScoreRepo{scores: scoreMap}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 3)
	require.NoError(t, err)

	require.Len(t, result.Ranking, 3)
	for i, entry := range result.Ranking {
		assert.Equal(t, i+1, entry.Position)
	}
	// Truncation must not shrink the population count.
	assert.Equal(t, 5, result.Stats.TotalMembers)
}

func TestBuildRankingNonPositiveLimitUsesDefault(t *testing.T) {
	users := &fakeUserRepo{}
	for i := 1; i <= 4; i++ {
		users.participants = append(users.participants, participant(orderedID(i), fmt.Sprintf("member%d", i)))
	}
	scores := &fakeScoreRepo{}
	svc := newTestRankingService(users, scores, 2)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, -1)
	require.NoError(t, err)

	assert.Len(t, result.Ranking, 2)
}

func TestBuildRankingStats(t *testing.T) {
	ana, bruno := orderedID(1), orderedID(2)
	users := &fakeUserRepo{participants: []model.User{
		participant(ana, "ana"),
		participant(bruno, "bruno"),
	}}
	scores := &fakeScoreRepo{scores: map[uuid.UUID]repository.MemberScore{
		ana:   {ActivityPoints: 30},
		bruno: {ActivityPoints: 25},
	}}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodMonth, 0)
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, 2, stats.TotalMembers)
	assert.Equal(t, "month", stats.Period)
	require.NotNil(t, stats.StartDate)
	require.NotNil(t, stats.EndDate)
	assert.Equal(t, "2024-03-01T00:00:00Z", *stats.StartDate)
	assert.Equal(t, "2024-03-31T23:59:59Z", *stats.EndDate)
	require.NotNil(t, stats.TopPerformer)
	assert.Equal(t, ana, stats.TopPerformer.MemberID)
	// round(55 / 2) = 28
	assert.Equal(t, 28, stats.AveragePoints)
}

func TestBuildRankingAllPeriodOmitsDates(t *testing.T) {
	users := &fakeUserRepo{participants: []model.User{participant(orderedID(1), "ana")}}
	scores := &fakeScoreRepo{}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), "whenever", 0)
	require.NoError(t, err)

	assert.Equal(t, "all", result.Stats.Period)
	assert.Nil(t, result.Stats.StartDate)
	assert.Nil(t, result.Stats.EndDate)
	assert.Nil(t, scores.lastStart)
	assert.Nil(t, scores.lastEnd)
}

func TestBuildRankingAverageOverReturnedSliceOnly(t *testing.T) {
	users := &fakeUserRepo{}
	scoreMap := make(map[uuid.UUID]repository.MemberScore)
	totals := []int{100, 50, 1}
	for i, total := range totals {
		id := orderedID(i + 1)
		users.participants = append(users.participants, participant(id, fmt.Sprintf("member%d", i+1)))
		scoreMap[id] = repository.MemberScore{ActivityPoints: total}
	}
	scores := &fakeScoreRepo{scores: scoreMap}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 2)
	require.NoError(t, err)

	// Mean over the top two only: round(150 / 2) = 75, not round(151 / 3).
	assert.Equal(t, 75, result.Stats.AveragePoints)
}

func TestBuildRankingNegativeTotalsAndRounding(t *testing.T) {
	first, second, third := orderedID(1), orderedID(2), orderedID(3)
	users := &fakeUserRepo{participants: []model.User{
		participant(first, "first"),
		participant(second, "second"),
		participant(third, "third"),
	}}
	scores := &fakeScoreRepo{scores: map[uuid.UUID]repository.MemberScore{
		first:  {ActivityPoints: 200},
		second: {ActivityPoints: 100, AdjustmentPoints: 20},
		third:  {ActivityPoints: 10, AdjustmentPoints: -50, ActivitiesCompleted: 1},
	}}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 0)
	require.NoError(t, err)

	// A net-negative total stays negative, never clamped to zero.
	require.Len(t, result.Ranking, 3)
	assert.Equal(t, -40, result.Ranking[2].TotalPoints)
	assert.Equal(t, 3, result.Ranking[2].Position)

	// round((200 + 120 - 40) / 3) = round(93.33) = 93
	assert.Equal(t, 93, result.Stats.AveragePoints)
}

func TestBuildRankingEmptyPopulation(t *testing.T) {
	svc := newTestRankingService(&fakeUserRepo{}, &fakeScoreRepo{}, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 0)
	require.NoError(t, err)

	assert.Empty(t, result.Ranking)
	assert.Equal(t, 0, result.Stats.TotalMembers)
	assert.Nil(t, result.Stats.TopPerformer)
	assert.Equal(t, 0, result.Stats.AveragePoints)
}

func TestBuildRankingPassesIntervalToAggregator(t *testing.T) {
	users := &fakeUserRepo{participants: []model.User{participant(orderedID(1), "ana")}}
	scores := &fakeScoreRepo{}
	svc := newTestRankingService(users, scores, 50)

	_, err := svc.BuildRanking(context.Background(), PeriodYear, 0)
	require.NoError(t, err)

	require.NotNil(t, scores.lastStart)
	require.NotNil(t, scores.lastEnd)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *scores.lastStart)
	assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC), *scores.lastEnd)
	assert.Equal(t, []uuid.UUID{orderedID(1)}, scores.lastIDs)
}

func TestBuildRankingAggregationFailureFailsWhole(t *testing.T) {
	users := &fakeUserRepo{participants: []model.User{participant(orderedID(1), "ana")}}
	scores := &fakeScoreRepo{err: errors.New("query timeout")}
	svc := newTestRankingService(users, scores, 50)

	result, err := svc.BuildRanking(context.Background(), PeriodAll, 0)

	assert.Error(t, err)
	assert.Nil(t, result)
}

// factScoreRepo aggregates from raw timestamped facts with the same
// inclusive bounds the SQL aggregation applies, so interval plumbing can be
// checked end to end.
type factScoreRepo struct {
	completions []model.ActivityCompletion
	adjustments []model.PointsAdjustment
}

func (f *factScoreRepo) AggregateScores(ctx context.Context, userIDs []uuid.UUID, start, end *time.Time) (map[uuid.UUID]repository.MemberScore, error) {
	inInterval := func(ts time.Time) bool {
		if start != nil && ts.Before(*start) {
			return false
		}
		if end != nil && ts.After(*end) {
			return false
		}
		return true
	}

	scores := make(map[uuid.UUID]repository.MemberScore)
	for _, id := range userIDs {
		score := repository.MemberScore{}
		for _, c := range f.completions {
			if c.UserID == id && inInterval(c.CompletedAt) {
				score.ActivityPoints += c.PointsAwarded
				score.ActivitiesCompleted++
			}
		}
		for _, a := range f.adjustments {
			if a.UserID == id && inInterval(a.CreatedAt) {
				score.AdjustmentPoints += a.Points
			}
		}
		scores[id] = score
	}
	return scores, nil
}

func TestBuildRankingPeriodScenario(t *testing.T) {
	ana := orderedID(1)
	users := &fakeUserRepo{participants: []model.User{participant(ana, "ana")}}

	march := func(day, hour int) time.Time {
		return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
	}
	scores := &factScoreRepo{
		completions: []model.ActivityCompletion{
			{UserID: ana, PointsAwarded: 10, CompletedAt: march(1, 0)},
			{UserID: ana, PointsAwarded: 20, CompletedAt: time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)},
			{UserID: ana, PointsAwarded: 40, CompletedAt: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
			{UserID: ana, PointsAwarded: 80, CompletedAt: time.Date(2023, time.December, 5, 0, 0, 0, 0, time.UTC)},
		},
		adjustments: []model.PointsAdjustment{
			{UserID: ana, Points: -5, CreatedAt: march(15, 12)},
			{UserID: ana, Points: 7, CreatedAt: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := newTestRankingService(users, scores, 50) // now is 2024-03-15

	// Month: only facts inside March count, including the 23:59:59 boundary.
	month, err := svc.BuildRanking(context.Background(), PeriodMonth, 0)
	require.NoError(t, err)
	assert.Equal(t, 25, month.Ranking[0].TotalPoints)
	assert.Equal(t, 30, month.Ranking[0].ActivityPoints)
	assert.Equal(t, -5, month.Ranking[0].AdjustmentPoints)
	assert.Equal(t, 2, month.Ranking[0].ActivitiesCompletedCount)

	// Year: February joins, last year's facts stay out.
	year, err := svc.BuildRanking(context.Background(), PeriodYear, 0)
	require.NoError(t, err)
	assert.Equal(t, 65, year.Ranking[0].TotalPoints)
	assert.Equal(t, 3, year.Ranking[0].ActivitiesCompletedCount)

	// All time: everything counts.
	all, err := svc.BuildRanking(context.Background(), PeriodAll, 0)
	require.NoError(t, err)
	assert.Equal(t, 152, all.Ranking[0].TotalPoints)
	assert.Equal(t, 4, all.Ranking[0].ActivitiesCompletedCount)
}

func TestMemberScore(t *testing.T) {
	ana := orderedID(1)
	scores := &fakeScoreRepo{scores: map[uuid.UUID]repository.MemberScore{
		ana: {ActivityPoints: 30, AdjustmentPoints: -5, ActivitiesCompleted: 2},
	}}
	svc := newTestRankingService(&fakeUserRepo{}, scores, 50)

	result, err := svc.MemberScore(context.Background(), ana, PeriodMonth)
	require.NoError(t, err)

	assert.Equal(t, ana, result.MemberID)
	assert.Equal(t, "month", result.Period)
	assert.Equal(t, 30, result.ActivityPoints)
	assert.Equal(t, -5, result.AdjustmentPoints)
	assert.Equal(t, 25, result.TotalPoints)
	assert.Equal(t, 2, result.ActivitiesCompletedCount)
}

func TestMemberScoreUnknownMemberIsZero(t *testing.T) {
	svc := newTestRankingService(&fakeUserRepo{}, &fakeScoreRepo{}, 50)

	result, err := svc.MemberScore(context.Background(), orderedID(9), PeriodAll)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalPoints)
	assert.Equal(t, 0, result.ActivitiesCompletedCount)
}
