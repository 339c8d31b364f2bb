package models

// DailySummary aggregates one user's day against their health profile.
type DailySummary struct {
	UserID            string  `json:"userId"`
	Date              string  `json:"date"`
	ConsumedCalories  float64 `json:"consumedCalories"`
	BurnedCalories    float64 `json:"burnedCalories"`
	NetCalories       float64 `json:"netCalories"`
	TargetCalories    float64 `json:"targetCalories"`
	RemainingCalories float64 `json:"remainingCalories"`
	WaterMl           float64 `json:"waterMl"`
	SleepHours        float64 `json:"sleepHours"`
	MealCount         int     `json:"mealCount"`
	WorkoutCount      int     `json:"workoutCount"`
}
