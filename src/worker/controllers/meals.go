package controllers

import (
	"context"
	"fmt"
	"strings"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

const maxMealItems = 100

type MealsControllerI interface {
	CreateMeal(ctx context.Context, userID string, req schemas.MealRequest) (*models.Meal, error)
	ListMeals(ctx context.Context, userID, date string) ([]models.Meal, error)
	DeleteMeal(ctx context.Context, userID, mealID string) error
}

type MealsController struct {
	UserRepo repositories.UserRepository
	MealRepo repositories.MealRepository
}

func NewMealsController(userRepo repositories.UserRepository, mealRepo repositories.MealRepository) *MealsController {
	return &MealsController{UserRepo: userRepo, MealRepo: mealRepo}
}

func (c *MealsController) CreateMeal(ctx context.Context, userID string, req schemas.MealRequest) (*models.Meal, error) {
	date, err := dateParam("date", req.Date)
	if err != nil {
		return nil, err
	}
	mealType := strings.ToLower(utils.SanitizeString(req.Type))
	if !models.ValidMealType(mealType) {
		return nil, utils.WithDetails(utils.BadRequest("invalid meal"), "type must be one of breakfast, lunch, dinner or snack")
	}
	if len(req.Items) > maxMealItems {
		return nil, utils.WithDetails(utils.BadRequest("invalid meal"), fmt.Sprintf("at most %d items per meal", maxMealItems))
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}

	meal := &models.Meal{
		ID:     newID(),
		UserID: userID,
		Date:   date,
		Type:   mealType,
		Name:   utils.SanitizeString(req.Name),
		Items:  make([]models.MealItem, 0, len(req.Items)),
	}
	for i, item := range req.Items {
		name := utils.SanitizeString(item.Name)
		if name == "" {
			return nil, utils.WithDetails(utils.BadRequest("invalid meal"), fmt.Sprintf("items[%d].name is required", i))
		}
		meal.Items = append(meal.Items, models.MealItem{
			ID:       newID(),
			Name:     name,
			Quantity: float64(item.Quantity),
			Unit:     utils.SanitizeString(item.Unit),
			Calories: float64(item.Calories),
			Protein:  float64(item.Protein),
			Carbs:    float64(item.Carbs),
			Fat:      float64(item.Fat),
		})
	}

	if err := c.MealRepo.Create(ctx, meal); err != nil {
		return nil, storeError(err, "meal")
	}
	return meal, nil
}

func (c *MealsController) ListMeals(ctx context.Context, userID, date string) ([]models.Meal, error) {
	day, err := dateParam("date", date)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}
	meals, err := c.MealRepo.ListByDate(ctx, userID, day)
	return meals, storeError(err, "meal")
}

func (c *MealsController) DeleteMeal(ctx context.Context, userID, mealID string) error {
	return storeError(c.MealRepo.Delete(ctx, userID, mealID), "meal")
}
