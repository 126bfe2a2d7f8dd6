package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/model"
)

type ActivityFilter struct {
	Search   string
	Category string
	Active   string // "", "true" or "false"
	Page     int
	Limit    int
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error)
	FindByName(ctx context.Context, name string) (*model.Activity, error)
	FindAll(ctx context.Context, filter ActivityFilter) ([]model.Activity, int64, error)
	CompletionCounts(ctx context.Context, activityIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Update(ctx context.Context, activity *model.Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Activity, error) {
	var activity model.Activity
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&activity).Error; err != nil {
		return nil, err
	}

	return &activity, nil
}

func (r *activityRepository) FindByName(ctx context.Context, name string) (*model.Activity, error) {
	var activity model.Activity
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&activity).Error; err != nil {
		return nil, err
	}

	return &activity, nil
}

func (r *activityRepository) FindAll(ctx context.Context, filter ActivityFilter) ([]model.Activity, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Activity{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	switch filter.Active {
	case "true":
		query = query.Where("due_date IS NULL OR due_date >= ?", time.Now())
	case "false":
		query = query.Where("due_date < ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []model.Activity
	if err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *activityRepository) CompletionCounts(ctx context.Context, activityIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(activityIDs))
	if len(activityIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ActivityID uuid.UUID
		Count      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&model.ActivityCompletion{}).
		Select("activity_id, COUNT(*) as count").
		Where("activity_id IN ?", activityIDs).
		Group("activity_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ActivityID] = row.Count
	}

	return counts, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Activity{}, "id = ?", id).Error
}
