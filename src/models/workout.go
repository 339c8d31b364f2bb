package models

import "time"

type Workout struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"userId"`
	Date            string    `db:"date" json:"date"`
	Type            string    `db:"workout_type" json:"type"`
	DurationMinutes int       `db:"duration_minutes" json:"durationMinutes"`
	CaloriesBurned  float64   `db:"calories_burned" json:"caloriesBurned"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

func (Workout) TableName() string {
	return "workouts"
}
