package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN PARTICIPANT"`
}

type UpdateUserInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN PARTICIPANT"`
}

type ListUsersQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=ADMIN PARTICIPANT"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminUserResponse is the admin listing shape: identity plus all-time totals.
type AdminUserResponse struct {
	UserResponse
	TotalPoints         int `json:"totalPoints"`
	ActivityPoints      int `json:"activityPoints"`
	AdjustmentPoints    int `json:"adjustmentPoints"`
	ActivitiesCompleted int `json:"activitiesCompleted"`
}

type ListUsersResponse struct {
	Users      []AdminUserResponse `json:"users"`
	Pagination Pagination          `json:"pagination"`
}
