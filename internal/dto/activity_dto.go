package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateActivityInput struct {
	Name        string     `json:"name" binding:"required,min=2,max=150"`
	Description *string    `json:"description"`
	Points      int        `json:"points" binding:"required,min=1"`
	DueDate     *time.Time `json:"dueDate"`
	Category    *string    `json:"category" binding:"omitempty,max=50"`
}

type UpdateActivityInput struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=150"`
	Description *string    `json:"description"`
	Points      *int       `json:"points" binding:"omitempty,min=1"`
	DueDate     *time.Time `json:"dueDate"`
	ClearDue    bool       `json:"clearDueDate"`
	Category    *string    `json:"category" binding:"omitempty,max=50"`
}

type ListActivitiesQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   string `form:"active" binding:"omitempty,oneof=true false"`
}

type ActivityResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Description      *string    `json:"description,omitempty"`
	Points           int        `json:"points"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	Category         *string    `json:"category,omitempty"`
	IsActive         bool       `json:"isActive"`
	CompletionsCount int64      `json:"completionsCount"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Pagination Pagination         `json:"pagination"`
}
