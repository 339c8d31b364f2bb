package controllers

import (
	"context"

	"fittrack/src/models"
	"fittrack/src/services"
	"fittrack/src/utils"
)

type SummaryControllerI interface {
	GetDailySummary(ctx context.Context, userID, date string) (*models.DailySummary, error)
	GetSummaries(ctx context.Context, userID, startDate, endDate string) ([]models.DailySummary, error)
}

type SummaryController struct {
	SummaryService services.SummaryServiceI
}

func NewSummaryController(summaryService services.SummaryServiceI) *SummaryController {
	return &SummaryController{SummaryService: summaryService}
}

func (c *SummaryController) GetDailySummary(ctx context.Context, userID, date string) (*models.DailySummary, error) {
	day, err := dateParam("date", date)
	if err != nil {
		return nil, err
	}
	summary, err := c.SummaryService.GetDailySummary(ctx, userID, day)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return summary, nil
}

// GetSummaries returns one summary per day of the inclusive range. Range
// bounds are checked by the summary service.
func (c *SummaryController) GetSummaries(ctx context.Context, userID, startDate, endDate string) ([]models.DailySummary, error) {
	start, err := utils.ParseDate(utils.SanitizeString(startDate))
	if err != nil {
		return nil, utils.WithDetails(utils.BadRequest("invalid startDate"), err.Error())
	}
	end, err := utils.ParseDate(utils.SanitizeString(endDate))
	if err != nil {
		return nil, utils.WithDetails(utils.BadRequest("invalid endDate"), err.Error())
	}

	summaries, err := c.SummaryService.GetSummaries(ctx, userID, start, end)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return summaries, nil
}
