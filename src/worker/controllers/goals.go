package controllers

import (
	"context"
	"strings"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

type GoalsControllerI interface {
	CreateGoal(ctx context.Context, userID string, req schemas.GoalRequest) (*models.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	UpdateGoalStatus(ctx context.Context, userID, goalID string, req schemas.GoalStatusRequest) (*models.Goal, error)
}

type GoalsController struct {
	UserRepo repositories.UserRepository
	GoalRepo repositories.GoalRepository
}

func NewGoalsController(userRepo repositories.UserRepository, goalRepo repositories.GoalRepository) *GoalsController {
	return &GoalsController{UserRepo: userRepo, GoalRepo: goalRepo}
}

func (c *GoalsController) CreateGoal(ctx context.Context, userID string, req schemas.GoalRequest) (*models.Goal, error) {
	goalType := strings.ToLower(utils.SanitizeString(req.Type))
	if goalType == "" {
		return nil, utils.WithDetails(utils.BadRequest("invalid goal"), "type is required")
	}
	var deadline string
	if req.Deadline != "" {
		date, err := utils.ParseDate(utils.SanitizeString(req.Deadline))
		if err != nil {
			return nil, utils.WithDetails(utils.BadRequest("invalid goal"), err.Error())
		}
		deadline = utils.FormatToYYYYMMDD(date)
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		ID:          newID(),
		UserID:      userID,
		Type:        goalType,
		TargetValue: float64(req.TargetValue),
		Deadline:    deadline,
		Status:      models.GoalStatusActive,
	}
	if err := c.GoalRepo.Create(ctx, goal); err != nil {
		return nil, storeError(err, "goal")
	}
	return goal, nil
}

func (c *GoalsController) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}
	goals, err := c.GoalRepo.List(ctx, userID)
	return goals, storeError(err, "goal")
}

func (c *GoalsController) UpdateGoalStatus(ctx context.Context, userID, goalID string, req schemas.GoalStatusRequest) (*models.Goal, error) {
	status := strings.ToLower(utils.SanitizeString(req.Status))
	if !models.ValidGoalStatus(status) {
		return nil, utils.WithDetails(utils.BadRequest("invalid status"), "status must be active, completed or abandoned")
	}
	goal, err := c.GoalRepo.UpdateStatus(ctx, userID, goalID, status)
	if err != nil {
		return nil, storeError(err, "goal")
	}
	return goal, nil
}
