package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/model"
)

// MemberScore is one member's sums over the two fact streams for an interval.
// All fields are exact integers; AdjustmentPoints may be negative.
type MemberScore struct {
	ActivityPoints      int
	AdjustmentPoints    int
	ActivitiesCompleted int
}

func (s MemberScore) Total() int {
	return s.ActivityPoints + s.AdjustmentPoints
}

// ScoreRepository aggregates points per member. Start/end are inclusive
// bounds; nil means unbounded on that side. Members with no matching facts
// are simply absent from the returned map.
type ScoreRepository interface {
	AggregateScores(ctx context.Context, userIDs []uuid.UUID, start, end *time.Time) (map[uuid.UUID]MemberScore, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

type sumRow struct {
	UserID uuid.UUID
	Points int
	Count  int
}

// AggregateScores batches both fact-stream sums into one grouped query each
// instead of a round-trip per member. The two queries touch independent
// tables, so they run concurrently; either failing fails the whole call.
func (r *scoreRepository) AggregateScores(ctx context.Context, userIDs []uuid.UUID, start, end *time.Time) (map[uuid.UUID]MemberScore, error) {
	scores := make(map[uuid.UUID]MemberScore, len(userIDs))
	if len(userIDs) == 0 {
		return scores, nil
	}

	var (
		completionRows []sumRow
		adjustmentRows []sumRow
	)

	errs := make(chan error, 2)

	go func() {
		query := r.db.WithContext(ctx).
			Model(&model.ActivityCompletion{}).
			Select("user_id, COALESCE(SUM(points_awarded), 0) AS points, COUNT(*) AS count").
			Where("user_id IN ?", userIDs)
		if start != nil {
			query = query.Where("completed_at >= ?", *start)
		}
		if end != nil {
			query = query.Where("completed_at <= ?", *end)
		}
		errs <- query.Group("user_id").Scan(&completionRows).Error
	}()

	go func() {
		query := r.db.WithContext(ctx).
			Model(&model.PointsAdjustment{}).
			Select("user_id, COALESCE(SUM(points), 0) AS points").
			Where("user_id IN ?", userIDs)
		if start != nil {
			query = query.Where("created_at >= ?", *start)
		}
		if end != nil {
			query = query.Where("created_at <= ?", *end)
		}
		errs <- query.Group("user_id").Scan(&adjustmentRows).Error
	}()

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			return nil, err
		}
	}

	for _, row := range completionRows {
		score := scores[row.UserID]
		score.ActivityPoints = row.Points
		score.ActivitiesCompleted = row.Count
		scores[row.UserID] = score
	}
	for _, row := range adjustmentRows {
		score := scores[row.UserID]
		score.AdjustmentPoints = row.Points
		scores[row.UserID] = score
	}

	return scores, nil
}
