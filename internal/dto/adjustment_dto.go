package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAdjustmentInput struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	// Points may be negative; zero is rejected as a no-op.
	Points int     `json:"points" binding:"required"`
	Reason *string `json:"reason"`
}

type ListAdjustmentsQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	UserID string `form:"userId" binding:"omitempty,uuid"`
}

type AdjustmentResponse struct {
	ID        uuid.UUID `json:"id"`
	User      UserRef   `json:"user"`
	Points    int       `json:"points"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListAdjustmentsResponse struct {
	Adjustments []AdjustmentResponse `json:"adjustments"`
	Pagination  Pagination           `json:"pagination"`
}
