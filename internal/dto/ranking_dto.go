package dto

import "github.com/google/uuid"

// RankingEntry is one member's derived score and position for a single query.
// It is never persisted.
type RankingEntry struct {
	MemberID                 uuid.UUID `json:"memberId"`
	DisplayName              string    `json:"displayName"`
	Email                    string    `json:"email"`
	TotalPoints              int       `json:"totalPoints"`
	ActivityPoints           int       `json:"activityPoints"`
	AdjustmentPoints         int       `json:"adjustmentPoints"`
	ActivitiesCompletedCount int       `json:"activitiesCompletedCount"`
	Position                 int       `json:"position"`
}

type RankingStats struct {
	TotalMembers  int           `json:"totalMembers"`
	Period        string        `json:"period"`
	StartDate     *string       `json:"startDate,omitempty"`
	EndDate       *string       `json:"endDate,omitempty"`
	TopPerformer  *RankingEntry `json:"topPerformer"`
	AveragePoints int           `json:"averagePoints"`
}

type RankingResponse struct {
	Ranking []RankingEntry `json:"ranking"`
	Stats   RankingStats   `json:"stats"`
}

// MemberScoreResponse is the caller's own aggregate for a period.
type MemberScoreResponse struct {
	MemberID                 uuid.UUID `json:"memberId"`
	Period                   string    `json:"period"`
	ActivityPoints           int       `json:"activityPoints"`
	AdjustmentPoints         int       `json:"adjustmentPoints"`
	TotalPoints              int       `json:"totalPoints"`
	ActivitiesCompletedCount int       `json:"activitiesCompletedCount"`
}
