package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Activity struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Points      int        `gorm:"not null" json:"points"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    *string    `gorm:"size:50" json:"category,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the activity can still be completed.
// An activity with no due date never expires.
func (a *Activity) IsActive(now time.Time) bool {
	return a.DueDate == nil || !a.DueDate.Before(now)
}
