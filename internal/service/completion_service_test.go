package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/model"
	"sandalo.app/clubpoints/internal/repository"
	"sandalo.app/clubpoints/pkg/apperror"
)

type fakeCompletionRepo struct {
	completions []model.ActivityCompletion
	created     []model.ActivityCompletion
}

func (f *fakeCompletionRepo) Create(ctx context.Context, completion *model.ActivityCompletion) error {
	if completion.ID == uuid.Nil {
		completion.ID = uuid.New()
	}
	f.created = append(f.created, *completion)
	f.completions = append(f.completions, *completion)
	return nil
}

func (f *fakeCompletionRepo) FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*model.ActivityCompletion, error) {
	for i := range f.completions {
		if f.completions[i].UserID == userID && f.completions[i].ActivityID == activityID {
			completion := f.completions[i]
			return &completion, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompletionRepo) FindAll(ctx context.Context, filter repository.CompletionFilter) ([]model.ActivityCompletion, int64, error) {
	matched := make([]model.ActivityCompletion, 0, len(f.completions))
	for _, completion := range f.completions {
		if filter.UserID != nil && completion.UserID != *filter.UserID {
			continue
		}
		if filter.ActivityID != nil && completion.ActivityID != *filter.ActivityID {
			continue
		}
		if filter.StartDate != nil && completion.CompletedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && completion.CompletedAt.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, completion)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeCompletionRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, completion := range f.completions {
		if completion.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeActivityRepo struct {
	activities []model.Activity
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *model.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	f.activities = append(f.activities, *activity)
	return nil
}

func (f *fakeActivityRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	for i := range f.activities {
		if f.activities[i].ID == id {
			activity := f.activities[i]
			return &activity, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActivityRepo) FindByName(ctx context.Context, name string) (*model.Activity, error) {
	for i := range f.activities {
		if f.activities[i].Name == name {
			activity := f.activities[i]
			return &activity, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActivityRepo) FindAll(ctx context.Context, filter repository.ActivityFilter) ([]model.Activity, int64, error) {
	return f.activities, int64(len(f.activities)), nil
}

func (f *fakeActivityRepo) CompletionCounts(ctx context.Context, activityIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return map[uuid.UUID]int64{}, nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, activity *model.Activity) error { return nil }
func (f *fakeActivityRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }

func completionFixture() (*fakeCompletionRepo, CompletionService, uuid.UUID, uuid.UUID) {
	userID := orderedID(1)
	activityID := orderedID(100)
	users := &fakeUserRepo{participants: []model.User{participant(userID, "ana")}}
	activities := &fakeActivityRepo{activities: []model.Activity{{ID: activityID, Name: "book club", Points: 10}}}
	completions := &fakeCompletionRepo{}
	svc := NewCompletionService(completions, users, activities)
	return completions, svc, userID, activityID
}

func TestRecordCompletion(t *testing.T) {
	completions, svc, userID, activityID := completionFixture()

	result, err := svc.RecordCompletion(context.Background(), dto.CreateCompletionInput{
		UserID:        userID,
		ActivityID:    activityID,
		PointsAwarded: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, userID, result.User.ID)
	assert.Equal(t, "book club", result.Activity.Name)
	assert.Equal(t, 10, result.PointsAwarded)
	require.Len(t, completions.created, 1)
	assert.False(t, completions.created[0].CompletedAt.IsZero())
}

func TestRecordCompletionRejectsDuplicate(t *testing.T) {
	_, svc, userID, activityID := completionFixture()

	input := dto.CreateCompletionInput{UserID: userID, ActivityID: activityID, PointsAwarded: 10}
	_, err := svc.RecordCompletion(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.RecordCompletion(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
	assert.Contains(t, err.Error(), "already completed")
}

func TestRecordCompletionUnknownUser(t *testing.T) {
	_, svc, _, activityID := completionFixture()

	_, err := svc.RecordCompletion(context.Background(), dto.CreateCompletionInput{
		UserID:        orderedID(999),
		ActivityID:    activityID,
		PointsAwarded: 10,
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestRecordCompletionUnknownActivity(t *testing.T) {
	_, svc, userID, _ := completionFixture()

	_, err := svc.RecordCompletion(context.Background(), dto.CreateCompletionInput{
		UserID:        userID,
		ActivityID:    orderedID(999),
		PointsAwarded: 10,
	})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestGetCompletionsDateFilter(t *testing.T) {
	completions, svc, userID, activityID := completionFixture()

	completions.completions = []model.ActivityCompletion{
		{
			ID: uuid.New(), UserID: userID, ActivityID: activityID, PointsAwarded: 10,
			CompletedAt: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), UserID: userID, ActivityID: activityID, PointsAwarded: 20,
			CompletedAt: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	result, err := svc.GetCompletions(context.Background(), dto.ListCompletionsQuery{
		StartDate: "2024-03-01T00:00:00Z",
	})
	require.NoError(t, err)

	require.Len(t, result.Completions, 1)
	assert.Equal(t, 20, result.Completions[0].PointsAwarded)
}

func TestGetCompletionsRejectsBadDate(t *testing.T) {
	_, svc, _, _ := completionFixture()

	_, err := svc.GetCompletions(context.Background(), dto.ListCompletionsQuery{StartDate: "03/01/2024"})

	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}
