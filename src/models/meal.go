package models

import "time"

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// ValidMealType reports whether t is one of the known meal types.
func ValidMealType(t string) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

type Meal struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"userId"`
	Date      string     `db:"date" json:"date"`
	Type      string     `db:"meal_type" json:"type"`
	Name      string     `db:"name" json:"name"`
	Items     []MealItem `db:"-" json:"items"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

func (Meal) TableName() string {
	return "meals"
}

// TotalCalories sums the calories of every item in the meal.
func (m Meal) TotalCalories() float64 {
	var total float64
	for _, item := range m.Items {
		total += item.Calories
	}
	return total
}

type MealItem struct {
	ID       string  `db:"id" json:"id"`
	MealID   string  `db:"meal_id" json:"mealId"`
	UserID   string  `db:"user_id" json:"userId"`
	Name     string  `db:"name" json:"name"`
	Quantity float64 `db:"quantity" json:"quantity"`
	Unit     string  `db:"unit" json:"unit"`
	Calories float64 `db:"calories" json:"calories"`
	Protein  float64 `db:"protein" json:"protein"`
	Carbs    float64 `db:"carbs" json:"carbs"`
	Fat      float64 `db:"fat" json:"fat"`
}

func (MealItem) TableName() string {
	return "meal_items"
}
