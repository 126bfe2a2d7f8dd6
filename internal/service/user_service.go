package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/model"
	"sandalo.app/clubpoints/internal/repository"
	"sandalo.app/clubpoints/pkg/apperror"
)

type UserService interface {
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context, query dto.ListUsersQuery) (*dto.ListUsersResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, callerID, id uuid.UUID) error
}

type userService struct {
	repo        repository.UserRepository
	completions repository.CompletionRepository
	scores      repository.ScoreRepository
}

func NewUserService(repo repository.UserRepository, completions repository.CompletionRepository, scores repository.ScoreRepository) UserService {
	return &userService{
		repo:        repo,
		completions: completions,
		scores:      scores,
	}
}

func (s *userService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.New(http.StatusBadRequest, "email already registered", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleParticipant
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) GetAllUsers(ctx context.Context, query dto.ListUsersQuery) (*dto.ListUsersResponse, error) {
	filter := repository.UserFilter{
		Search: query.Search,
		Role:   query.Role,
		Page:   query.Page,
		Limit:  query.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	users, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, len(users))
	for i, user := range users {
		userIDs[i] = user.ID
	}

	// All-time totals for the listing; reuses the same aggregation the
	// ranking runs on, with no interval bounds.
	scores, err := s.scores.AggregateScores(ctx, userIDs, nil, nil)
	if err != nil {
		return nil, err
	}

	response := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		score := scores[user.ID]
		response = append(response, dto.AdminUserResponse{
			UserResponse:        *toUserResponse(&user),
			TotalPoints:         score.Total(),
			ActivityPoints:      score.ActivityPoints,
			AdjustmentPoints:    score.AdjustmentPoints,
			ActivitiesCompleted: score.ActivitiesCompleted,
		})
	}

	return &dto.ListUsersResponse{
		Users:      response,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, apperror.New(http.StatusBadRequest, "email already registered", nil)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, callerID, id uuid.UUID) error {
	if callerID == id {
		return apperror.New(http.StatusBadRequest, "cannot delete your own account", nil)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	// Completions reference the user; removal is blocked while any exist.
	count, err := s.completions.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.New(http.StatusBadRequest, "cannot delete a user with recorded completions", nil)
	}

	return s.repo.Delete(ctx, id)
}
