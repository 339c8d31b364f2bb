package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/utils"
)

type SummaryServiceI interface {
	GetDailySummary(ctx context.Context, userID, date string) (*models.DailySummary, error)
	GetSummaries(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailySummary, error)
}

// SummaryService aggregates a user's day from the local store.
type SummaryService struct {
	userRepo    repositories.UserRepository
	mealRepo    repositories.MealRepository
	workoutRepo repositories.WorkoutRepository
	metricsRepo repositories.MetricsRepository
}

func NewSummaryService(
	userRepo repositories.UserRepository,
	mealRepo repositories.MealRepository,
	workoutRepo repositories.WorkoutRepository,
	metricsRepo repositories.MetricsRepository,
) *SummaryService {
	return &SummaryService{
		userRepo:    userRepo,
		mealRepo:    mealRepo,
		workoutRepo: workoutRepo,
		metricsRepo: metricsRepo,
	}
}

func (s *SummaryService) GetDailySummary(ctx context.Context, userID, date string) (*models.DailySummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var target float64
	profile, err := s.userRepo.GetProfile(ctx, userID)
	switch {
	case err == nil:
		target = profile.TargetCalories
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	return s.buildSummary(ctx, userID, date, target)
}

// GetSummaries returns one summary per day in [startDate, endDate].
func (s *SummaryService) GetSummaries(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailySummary, error) {
	// Sub saturates, so huge ranges are refused before any day is generated.
	if endDate.Sub(startDate) > time.Duration(utils.MaxSummaryDays-1)*24*time.Hour {
		return nil, utils.BadRequest(fmt.Sprintf("date range exceeds %d days", utils.MaxSummaryDays))
	}
	dates, err := utils.GenerateDates(startDate, endDate, 24*time.Hour)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}

	first, err := s.GetDailySummary(ctx, userID, utils.FormatToYYYYMMDD(dates[0]))
	if err != nil {
		return nil, err
	}
	summaries := make([]models.DailySummary, 0, len(dates))
	summaries = append(summaries, *first)
	for _, date := range dates[1:] {
		summary, err := s.buildSummary(ctx, userID, utils.FormatToYYYYMMDD(date), first.TargetCalories)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *SummaryService) buildSummary(ctx context.Context, userID, date string, target float64) (*models.DailySummary, error) {
	summary := &models.DailySummary{UserID: userID, Date: date, TargetCalories: target}

	meals, err := s.mealRepo.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	for _, meal := range meals {
		summary.ConsumedCalories += meal.TotalCalories()
	}
	summary.MealCount = len(meals)

	workouts, err := s.workoutRepo.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	for _, w := range workouts {
		summary.BurnedCalories += w.CaloriesBurned
	}
	summary.WorkoutCount = len(workouts)

	if water, err := s.metricsRepo.GetWater(ctx, userID, date); err == nil {
		summary.WaterMl = water.AmountMl
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if sleep, err := s.metricsRepo.GetSleep(ctx, userID, date); err == nil {
		summary.SleepHours = sleep.Hours
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	summary.NetCalories = summary.ConsumedCalories - summary.BurnedCalories
	summary.RemainingCalories = summary.TargetCalories - summary.NetCalories
	return summary, nil
}
