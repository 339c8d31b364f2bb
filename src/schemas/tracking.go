package schemas

import (
	"strconv"
	"strings"
	"time"

	"fittrack/src/utils"
)

// Number accepts a JSON number or a numeric string. Anything unparsable
// decodes to 0 and negatives are clamped to 0.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	value := strings.Trim(string(b), `"`)
	*n = Number(utils.SanitizeNumber(value))
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

type CreateUserRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProfileRequest struct {
	TargetCalories   Number `json:"targetCalories"`
	HeightCm         Number `json:"heightCm"`
	WeightGoalKg     Number `json:"weightGoalKg"`
	TargetWaterMl    Number `json:"targetWaterMl"`
	TargetSleepHours Number `json:"targetSleepHours"`
}

type MealItemRequest struct {
	Name     string `json:"name"`
	Quantity Number `json:"quantity"`
	Unit     string `json:"unit"`
	Calories Number `json:"calories"`
	Protein  Number `json:"protein"`
	Carbs    Number `json:"carbs"`
	Fat      Number `json:"fat"`
}

type MealRequest struct {
	Date  string            `json:"date"`
	Type  string            `json:"type"`
	Name  string            `json:"name"`
	Items []MealItemRequest `json:"items"`
}

type WorkoutRequest struct {
	Date            string `json:"date"`
	Type            string `json:"type"`
	DurationMinutes Number `json:"durationMinutes"`
	CaloriesBurned  Number `json:"caloriesBurned"`
}

type WeightRequest struct {
	WeightKg   Number     `json:"weightKg"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

type WaterRequest struct {
	Date     string `json:"date"`
	AmountMl Number `json:"amountMl"`
}

type SleepRequest struct {
	Date    string `json:"date"`
	Hours   Number `json:"hours"`
	Quality Number `json:"quality"`
}

type GoalRequest struct {
	Type        string `json:"type"`
	TargetValue Number `json:"targetValue"`
	Deadline    string `json:"deadline,omitempty"`
}

type GoalStatusRequest struct {
	Status string `json:"status"`
}

type RetryResponse struct {
	Requeued int64 `json:"requeued"`
}
