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

type ActivityService interface {
	CreateActivity(ctx context.Context, input dto.CreateActivityInput) (*dto.ActivityResponse, error)
	GetAllActivities(ctx context.Context, query dto.ListActivitiesQuery) (*dto.ListActivitiesResponse, error)
	UpdateActivity(ctx context.Context, id uuid.UUID, input dto.UpdateActivityInput) (*dto.ActivityResponse, error)
	DeleteActivity(ctx context.Context, id uuid.UUID) error
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) CreateActivity(ctx context.Context, input dto.CreateActivityInput) (*dto.ActivityResponse, error) {
	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, apperror.New(http.StatusBadRequest, "activity with this name already exists", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	activity := &model.Activity{
		Name:        input.Name,
		Description: input.Description,
		Points:      input.Points,
		DueDate:     input.DueDate,
		Category:    input.Category,
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}

	response := toActivityResponse(activity, 0, time.Now())
	return &response, nil
}

func (s *activityService) GetAllActivities(ctx context.Context, query dto.ListActivitiesQuery) (*dto.ListActivitiesResponse, error) {
	filter := repository.ActivityFilter{
		Search:   query.Search,
		Category: query.Category,
		Active:   query.Active,
		Page:     query.Page,
		Limit:    query.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	activities, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	activityIDs := make([]uuid.UUID, len(activities))
	for i, activity := range activities {
		activityIDs[i] = activity.ID
	}

	counts, err := s.repo.CompletionCounts(ctx, activityIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	response := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		response = append(response, toActivityResponse(&activities[i], counts[activities[i].ID], now))
	}

	return &dto.ListActivitiesResponse{
		Activities: response,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *activityService) UpdateActivity(ctx context.Context, id uuid.UUID, input dto.UpdateActivityInput) (*dto.ActivityResponse, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != activity.Name {
		if _, err := s.repo.FindByName(ctx, *input.Name); err == nil {
			return nil, apperror.New(http.StatusBadRequest, "activity with this name already exists", nil)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		activity.Name = *input.Name
	}

	if input.Description != nil {
		activity.Description = input.Description
	}
	if input.Points != nil {
		activity.Points = *input.Points
	}
	if input.ClearDue {
		activity.DueDate = nil
	} else if input.DueDate != nil {
		activity.DueDate = input.DueDate
	}
	if input.Category != nil {
		activity.Category = input.Category
	}

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, err
	}

	counts, err := s.repo.CompletionCounts(ctx, []uuid.UUID{activity.ID})
	if err != nil {
		return nil, err
	}

	response := toActivityResponse(activity, counts[activity.ID], time.Now())
	return &response, nil
}

func (s *activityService) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func toActivityResponse(activity *model.Activity, completions int64, now time.Time) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:               activity.ID,
		Name:             activity.Name,
		Description:      activity.Description,
		Points:           activity.Points,
		DueDate:          activity.DueDate,
		Category:         activity.Category,
		IsActive:         activity.IsActive(now),
		CompletionsCount: completions,
		CreatedAt:        activity.CreatedAt,
		UpdatedAt:        activity.UpdatedAt,
	}
}
