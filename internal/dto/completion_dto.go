package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCompletionInput struct {
	UserID        uuid.UUID `json:"userId" binding:"required"`
	ActivityID    uuid.UUID `json:"activityId" binding:"required"`
	PointsAwarded int       `json:"pointsAwarded" binding:"required,min=1"`
	Note          *string   `json:"note"`
}

type ListCompletionsQuery struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	UserID     string `form:"userId" binding:"omitempty,uuid"`
	ActivityID string `form:"activityId" binding:"omitempty,uuid"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
}

type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ActivityRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Points int       `json:"points"`
}

type CompletionResponse struct {
	ID            uuid.UUID   `json:"id"`
	User          UserRef     `json:"user"`
	Activity      ActivityRef `json:"activity"`
	PointsAwarded int         `json:"pointsAwarded"`
	Note          *string     `json:"note,omitempty"`
	CompletedAt   time.Time   `json:"completedAt"`
}

type ListCompletionsResponse struct {
	Completions []CompletionResponse `json:"completions"`
	Pagination  Pagination           `json:"pagination"`
}
