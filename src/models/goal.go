package models

import "time"

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

func ValidGoalStatus(status string) bool {
	switch status {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusAbandoned:
		return true
	}
	return false
}

type Goal struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Type        string    `db:"goal_type" json:"type"`
	TargetValue float64   `db:"target_value" json:"targetValue"`
	Deadline    string    `db:"deadline" json:"deadline,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

func (Goal) TableName() string {
	return "goals"
}
