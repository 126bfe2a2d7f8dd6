package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/model"
)

type AdjustmentFilter struct {
	UserID *uuid.UUID
	Page   int
	Limit  int
}

type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *model.PointsAdjustment) error
	FindAll(ctx context.Context, filter AdjustmentFilter) ([]model.PointsAdjustment, int64, error)
}

type adjustmentRepository struct {
	db *gorm.DB
}

func NewAdjustmentRepository(db *gorm.DB) AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func (r *adjustmentRepository) Create(ctx context.Context, adjustment *model.PointsAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

func (r *adjustmentRepository) FindAll(ctx context.Context, filter AdjustmentFilter) ([]model.PointsAdjustment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.PointsAdjustment{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var adjustments []model.PointsAdjustment
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}

	return adjustments, total, nil
}
