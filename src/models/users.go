package models

import "time"

type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// HealthProfile holds the per-user targets. One per user.
type HealthProfile struct {
	UserID           string    `db:"user_id" json:"userId"`
	TargetCalories   float64   `db:"target_calories" json:"targetCalories"`
	HeightCm         float64   `db:"height_cm" json:"heightCm"`
	WeightGoalKg     float64   `db:"weight_goal_kg" json:"weightGoalKg"`
	TargetWaterMl    float64   `db:"target_water_ml" json:"targetWaterMl"`
	TargetSleepHours float64   `db:"target_sleep_hours" json:"targetSleepHours"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

func (HealthProfile) TableName() string {
	return "health_profiles"
}
