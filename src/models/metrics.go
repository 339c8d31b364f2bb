package models

import "time"

// WeightEntry is a single timestamped weight sample in kilograms.
type WeightEntry struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	WeightKg   float64   `db:"weight_kg" json:"weightKg"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}

func (WeightEntry) TableName() string {
	return "weight_entries"
}

// WaterIntake is the per-date water total in millilitres.
type WaterIntake struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Date      string    `db:"date" json:"date"`
	AmountMl  float64   `db:"amount_ml" json:"amountMl"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (WaterIntake) TableName() string {
	return "water_intake"
}

// SleepEntry is the per-date sleep duration in hours.
type SleepEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Date      string    `db:"date" json:"date"`
	Hours     float64   `db:"hours" json:"hours"`
	Quality   int       `db:"quality" json:"quality"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (SleepEntry) TableName() string {
	return "sleep_entries"
}
