package controllers

import (
	"context"
	"fmt"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

const (
	defaultWeightHistory = 30
	maxWeightHistory     = 365
	maxSleepQuality      = 5
)

type MetricsControllerI interface {
	AddWeight(ctx context.Context, userID string, req schemas.WeightRequest) (*models.WeightEntry, error)
	ListWeights(ctx context.Context, userID, limit string) ([]models.WeightEntry, error)
	SetWater(ctx context.Context, userID string, req schemas.WaterRequest) (*models.WaterIntake, error)
	GetWater(ctx context.Context, userID, date string) (*models.WaterIntake, error)
	SetSleep(ctx context.Context, userID string, req schemas.SleepRequest) (*models.SleepEntry, error)
	GetSleep(ctx context.Context, userID, date string) (*models.SleepEntry, error)
}

type MetricsController struct {
	UserRepo    repositories.UserRepository
	MetricsRepo repositories.MetricsRepository
}

func NewMetricsController(userRepo repositories.UserRepository, metricsRepo repositories.MetricsRepository) *MetricsController {
	return &MetricsController{UserRepo: userRepo, MetricsRepo: metricsRepo}
}

func (c *MetricsController) AddWeight(ctx context.Context, userID string, req schemas.WeightRequest) (*models.WeightEntry, error) {
	if req.WeightKg <= 0 {
		return nil, utils.WithDetails(utils.BadRequest("invalid weight"), "weightKg must be positive")
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}

	entry := &models.WeightEntry{
		ID:       newID(),
		UserID:   userID,
		WeightKg: float64(req.WeightKg),
	}
	if req.RecordedAt != nil {
		entry.RecordedAt = req.RecordedAt.UTC()
	}
	if err := c.MetricsRepo.AddWeight(ctx, entry); err != nil {
		return nil, storeError(err, "weight entry")
	}
	return entry, nil
}

func (c *MetricsController) ListWeights(ctx context.Context, userID, limit string) ([]models.WeightEntry, error) {
	n := utils.SanitizeInt(limit, defaultWeightHistory)
	if n > maxWeightHistory {
		n = maxWeightHistory
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}
	entries, err := c.MetricsRepo.ListWeights(ctx, userID, n)
	return entries, storeError(err, "weight entry")
}

// SetWater replaces the day's water total.
func (c *MetricsController) SetWater(ctx context.Context, userID string, req schemas.WaterRequest) (*models.WaterIntake, error) {
	date, err := dateParam("date", req.Date)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}

	intake := &models.WaterIntake{
		UserID:   userID,
		Date:     date,
		AmountMl: float64(req.AmountMl),
	}
	if err := c.MetricsRepo.SetWater(ctx, intake); err != nil {
		return nil, storeError(err, "water intake")
	}
	return intake, nil
}

func (c *MetricsController) GetWater(ctx context.Context, userID, date string) (*models.WaterIntake, error) {
	day, err := dateParam("date", date)
	if err != nil {
		return nil, err
	}
	intake, err := c.MetricsRepo.GetWater(ctx, userID, day)
	if err != nil {
		return nil, storeError(err, "water intake")
	}
	return intake, nil
}

// SetSleep replaces the day's sleep entry.
func (c *MetricsController) SetSleep(ctx context.Context, userID string, req schemas.SleepRequest) (*models.SleepEntry, error) {
	date, err := dateParam("date", req.Date)
	if err != nil {
		return nil, err
	}
	if req.Hours > 24 {
		return nil, utils.WithDetails(utils.BadRequest("invalid sleep"), "hours must be at most 24")
	}
	if req.Quality > maxSleepQuality {
		return nil, utils.WithDetails(utils.BadRequest("invalid sleep"), fmt.Sprintf("quality must be between 0 and %d", maxSleepQuality))
	}
	if err := requireUser(ctx, c.UserRepo, userID); err != nil {
		return nil, err
	}

	entry := &models.SleepEntry{
		UserID:  userID,
		Date:    date,
		Hours:   float64(req.Hours),
		Quality: int(req.Quality),
	}
	if err := c.MetricsRepo.SetSleep(ctx, entry); err != nil {
		return nil, storeError(err, "sleep entry")
	}
	return entry, nil
}

func (c *MetricsController) GetSleep(ctx context.Context, userID, date string) (*models.SleepEntry, error) {
	day, err := dateParam("date", date)
	if err != nil {
		return nil, err
	}
	entry, err := c.MetricsRepo.GetSleep(ctx, userID, day)
	if err != nil {
		return nil, storeError(err, "sleep entry")
	}
	return entry, nil
}
