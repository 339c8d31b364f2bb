package controllers

import (
	"context"
	"strings"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

type UsersControllerI interface {
	CreateUser(ctx context.Context, req schemas.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpsertProfile(ctx context.Context, userID string, req schemas.ProfileRequest) (*models.HealthProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error)
}

type UsersController struct {
	UserRepo repositories.UserRepository
}

func NewUsersController(userRepo repositories.UserRepository) *UsersController {
	return &UsersController{UserRepo: userRepo}
}

func (c *UsersController) CreateUser(ctx context.Context, req schemas.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		ID:    utils.SanitizeString(req.ID),
		Name:  utils.SanitizeString(req.Name),
		Email: strings.ToLower(utils.SanitizeString(req.Email)),
	}
	if user.Name == "" {
		return nil, utils.WithDetails(utils.BadRequest("invalid user"), "name is required")
	}
	if !strings.Contains(user.Email, "@") {
		return nil, utils.WithDetails(utils.BadRequest("invalid user"), "email is invalid")
	}
	if user.ID == "" {
		user.ID = newID()
	}

	if err := c.UserRepo.Create(ctx, user); err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (c *UsersController) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := c.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (c *UsersController) UpsertProfile(ctx context.Context, userID string, req schemas.ProfileRequest) (*models.HealthProfile, error) {
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}
	if req.TargetSleepHours > 24 {
		return nil, utils.WithDetails(utils.BadRequest("invalid profile"), "targetSleepHours must be at most 24")
	}

	profile := &models.HealthProfile{
		UserID:           userID,
		TargetCalories:   float64(req.TargetCalories),
		HeightCm:         float64(req.HeightCm),
		WeightGoalKg:     float64(req.WeightGoalKg),
		TargetWaterMl:    float64(req.TargetWaterMl),
		TargetSleepHours: float64(req.TargetSleepHours),
	}
	if err := c.UserRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, storeError(err, "profile")
	}
	return profile, nil
}

func (c *UsersController) GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	profile, err := c.UserRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeError(err, "profile")
	}
	return profile, nil
}
