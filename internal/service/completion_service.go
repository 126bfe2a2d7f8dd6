package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/model"
	"sandalo.app/clubpoints/internal/repository"
	"sandalo.app/clubpoints/pkg/apperror"
)

type CompletionService interface {
	RecordCompletion(ctx context.Context, input dto.CreateCompletionInput) (*dto.CompletionResponse, error)
	GetCompletions(ctx context.Context, query dto.ListCompletionsQuery) (*dto.ListCompletionsResponse, error)
}

type completionService struct {
	repo       repository.CompletionRepository
	users      repository.UserRepository
	activities repository.ActivityRepository
}

func NewCompletionService(repo repository.CompletionRepository, users repository.UserRepository, activities repository.ActivityRepository) CompletionService {
	return &completionService{
		repo:       repo,
		users:      users,
		activities: activities,
	}
}

func (s *completionService) RecordCompletion(ctx context.Context, input dto.CreateCompletionInput) (*dto.CompletionResponse, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusBadRequest, "user not found", nil)
		}
		return nil, err
	}

	activity, err := s.activities.FindByID(ctx, input.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusBadRequest, "activity not found", nil)
		}
		return nil, err
	}

	// A member completes a given activity at most once.
	if _, err := s.repo.FindByUserAndActivity(ctx, input.UserID, input.ActivityID); err == nil {
		return nil, apperror.New(http.StatusBadRequest, "user already completed this activity", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	completion := &model.ActivityCompletion{
		UserID:        input.UserID,
		ActivityID:    input.ActivityID,
		PointsAwarded: input.PointsAwarded,
		Note:          input.Note,
		CompletedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, completion); err != nil {
		return nil, err
	}

	response := toCompletionResponse(completion, user, activity)
	return &response, nil
}

func (s *completionService) GetCompletions(ctx context.Context, query dto.ListCompletionsQuery) (*dto.ListCompletionsResponse, error) {
	filter := repository.CompletionFilter{
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
	if query.ActivityID != "" {
		activityID, err := uuid.Parse(query.ActivityID)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		filter.ActivityID = &activityID
	}
	if query.StartDate != "" {
		start, err := time.Parse(time.RFC3339, query.StartDate)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid startDate, expected RFC3339", nil)
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse(time.RFC3339, query.EndDate)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid endDate, expected RFC3339", nil)
		}
		filter.EndDate = &end
	}

	completions, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := make([]dto.CompletionResponse, 0, len(completions))
	for i := range completions {
		completion := &completions[i]
		response = append(response, toCompletionResponse(completion, &completion.User, &completion.Activity))
	}

	return &dto.ListCompletionsResponse{
		Completions: response,
		Pagination:  dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func toCompletionResponse(completion *model.ActivityCompletion, user *model.User, activity *model.Activity) dto.CompletionResponse {
	return dto.CompletionResponse{
		ID: completion.ID,
		User: dto.UserRef{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		Activity: dto.ActivityRef{
			ID:     activity.ID,
			Name:   activity.Name,
			Points: activity.Points,
		},
		PointsAwarded: completion.PointsAwarded,
		Note:          completion.Note,
		CompletedAt:   completion.CompletedAt,
	}
}
