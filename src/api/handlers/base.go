package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"fittrack/src/api/controllers"
	"fittrack/src/utils"
)

const defaultRequestTimeout = 30 * time.Second

type Handler struct {
	HealthController   controllers.HealthControllerI
	GroceryController  controllers.GroceryControllerI
	RecipesController  controllers.RecipesControllerI
	MealPlanController controllers.MealPlanControllerI
	SyncController     controllers.SyncControllerI
	Logger             *logrus.Logger
	RequestTimeout     time.Duration
}

func NewHandler(
	healthController controllers.HealthControllerI,
	groceryController controllers.GroceryControllerI,
	recipesController controllers.RecipesControllerI,
	mealPlanController controllers.MealPlanControllerI,
	syncController controllers.SyncControllerI,
	logger *logrus.Logger,
	requestTimeout time.Duration,
) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Handler{
		HealthController:   healthController,
		GroceryController:  groceryController,
		RecipesController:  recipesController,
		MealPlanController: mealPlanController,
		SyncController:     syncController,
		Logger:             logger,
		RequestTimeout:     requestTimeout,
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors writes err as an {error, details} envelope.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		httpErr = &utils.HTTPError{Code: http.StatusGatewayTimeout, Message: "Request timed out"}
	case errors.As(err, &httpErr):
	case err != nil:
		httpErr = &utils.HTTPError{Code: http.StatusInternalServerError, Message: "Internal Server Error", Details: err.Error()}
	default:
		httpErr = &utils.HTTPError{Code: http.StatusInternalServerError, Message: "Unhandled error"}
	}

	if httpErr.Code >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.WithError(err).WithField("status", httpErr.Code).Error("Request failed")
	}
	utils.WriteError(w, httpErr)
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.RequestTimeout)
}
