package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/model"
	"sandalo.app/clubpoints/internal/repository"
	"sandalo.app/clubpoints/pkg/apperror"
)

type AdjustmentService interface {
	RecordAdjustment(ctx context.Context, input dto.CreateAdjustmentInput) (*dto.AdjustmentResponse, error)
	GetAdjustments(ctx context.Context, query dto.ListAdjustmentsQuery) (*dto.ListAdjustmentsResponse, error)
}

type adjustmentService struct {
	repo  repository.AdjustmentRepository
	users repository.UserRepository
}

func NewAdjustmentService(repo repository.AdjustmentRepository, users repository.UserRepository) AdjustmentService {
	return &adjustmentService{
		repo:  repo,
		users: users,
	}
}

func (s *adjustmentService) RecordAdjustment(ctx context.Context, input dto.CreateAdjustmentInput) (*dto.AdjustmentResponse, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusBadRequest, "user not found", nil)
		}
		return nil, err
	}

	adjustment := &model.PointsAdjustment{
		UserID: input.UserID,
		Points: input.Points,
		Reason: input.Reason,
	}

	if err := s.repo.Create(ctx, adjustment); err != nil {
		return nil, err
	}

	return &dto.AdjustmentResponse{
		ID: adjustment.ID,
		User: dto.UserRef{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		Points:    adjustment.Points,
		Reason:    adjustment.Reason,
		CreatedAt: adjustment.CreatedAt,
	}, nil
}

func (s *adjustmentService) GetAdjustments(ctx context.Context, query dto.ListAdjustmentsQuery) (*dto.ListAdjustmentsResponse, error) {
	filter := repository.AdjustmentFilter{
		Page:  query.Page,
		Limit: query.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	if query.UserID != "" {
		userID, err := uuid.Parse(query.UserID)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		filter.UserID = &userID
	}

	adjustments, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		adjustment := &adjustments[i]
		response = append(response, dto.AdjustmentResponse{
			ID: adjustment.ID,
			User: dto.UserRef{
				ID:    adjustment.User.ID,
				Name:  adjustment.User.Name,
				Email: adjustment.User.Email,
			},
			Points:    adjustment.Points,
			Reason:    adjustment.Reason,
			CreatedAt: adjustment.CreatedAt,
		})
	}

	return &dto.ListAdjustmentsResponse{
		Adjustments: response,
		Pagination:  dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}
