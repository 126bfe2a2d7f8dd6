package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityCompletion records that a user completed an activity. A user can
// complete a given activity at most once; PointsAwarded may differ from the
// activity's nominal point value. Rows are never updated once written.
type ActivityCompletion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_activity,priority:1;not null" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	ActivityID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_activity,priority:2;not null" json:"activity_id"`
	Activity      Activity  `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"-"`
	PointsAwarded int       `gorm:"not null" json:"points_awarded"`
	Note          *string   `gorm:"type:text" json:"note,omitempty"`
	CompletedAt   time.Time `gorm:"index;autoCreateTime" json:"completed_at"`
}

func (c *ActivityCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PointsAdjustment is a manual correction outside the completion flow.
// Points may be negative. Rows are never updated once written.
type PointsAdjustment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Points    int       `gorm:"not null" json:"points"`
	Reason    *string   `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

func (a *PointsAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
