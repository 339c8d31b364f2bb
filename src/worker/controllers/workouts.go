package controllers

import (
	"context"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

type WorkoutsControllerI interface {
	CreateWorkout(ctx context.Context, userID string, req schemas.WorkoutRequest) (*models.Workout, error)
	ListWorkouts(ctx context.Context, userID, date string) ([]models.Workout, error)
}

type WorkoutsController struct {
	UserRepo    repositories.UserRepository
	WorkoutRepo repositories.WorkoutRepository
}

func NewWorkoutsController(userRepo repositories.UserRepository, workoutRepo repositories.WorkoutRepository) *WorkoutsController {
	return &WorkoutsController{UserRepo: userRepo, WorkoutRepo: workoutRepo}
}

func (c *WorkoutsController) CreateWorkout(ctx context.Context, userID string, req schemas.WorkoutRequest) (*models.Workout, error) {
	date, err := dateParam("date", req.Date)
	if err != nil {
		return nil, err
	}
	workoutType := utils.SanitizeString(req.Type)
	if workoutType == "" {
		return nil, utils.WithDetails(utils.BadRequest("invalid workout"), "type is required")
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}

	workout := &models.Workout{
		ID:              newID(),
		UserID:          userID,
		Date:            date,
		Type:            workoutType,
		DurationMinutes: int(req.DurationMinutes),
		CaloriesBurned:  float64(req.CaloriesBurned),
	}
	if err := c.WorkoutRepo.Create(ctx, workout); err != nil {
		return nil, storeError(err, "workout")
	}
	return workout, nil
}

func (c *WorkoutsController) ListWorkouts(ctx context.Context, userID, date string) ([]models.Workout, error) {
	day, err := dateParam("date", date)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}
	workouts, err := c.WorkoutRepo.ListByDate(ctx, userID, day)
	return workouts, storeError(err, "workout")
}
