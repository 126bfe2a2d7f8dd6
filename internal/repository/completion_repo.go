package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/model"
)

type CompletionFilter struct {
	UserID     *uuid.UUID
	ActivityID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type CompletionRepository interface {
	Create(ctx context.Context, completion *model.ActivityCompletion) error
	FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*model.ActivityCompletion, error)
	FindAll(ctx context.Context, filter CompletionFilter) ([]model.ActivityCompletion, int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type completionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Create(ctx context.Context, completion *model.ActivityCompletion) error {
	return r.db.WithContext(ctx).Create(completion).Error
}

func (r *completionRepository) FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*model.ActivityCompletion, error) {
	var completion model.ActivityCompletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		First(&completion).Error; err != nil {
		return nil, err
	}

	return &completion, nil
}

func (r *completionRepository) FindAll(ctx context.Context, filter CompletionFilter) ([]model.ActivityCompletion, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ActivityCompletion{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ActivityID != nil {
		query = query.Where("activity_id = ?", *filter.ActivityID)
	}
	if filter.StartDate != nil {
		query = query.Where("completed_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("completed_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var completions []model.ActivityCompletion
	if err := query.
		Preload("User").
		Preload("Activity").
		Order("completed_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&completions).Error; err != nil {
		return nil, 0, err
	}

	return completions, total, nil
}

func (r *completionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.ActivityCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
