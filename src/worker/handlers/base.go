package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"fittrack/src/repositories"
	"fittrack/src/services"
	"fittrack/src/utils"
	"fittrack/src/worker/controllers"
)

// max JSON request body accepted by the tracking endpoints
const maxBodyBytes = 1 << 20

type Handler struct {
	SyncController     controllers.SyncControllerI
	UsersController    controllers.UsersControllerI
	MealsController    controllers.MealsControllerI
	WorkoutsController controllers.WorkoutsControllerI
	MetricsController  controllers.MetricsControllerI
	GoalsController    controllers.GoalsControllerI
	SummaryController  controllers.SummaryControllerI
	Logger             *logrus.Logger
}

// NewHandler wires the tracking controllers to the local store and the sync
// controller to syncService.
func NewHandler(db *sql.DB, syncService services.SyncServiceI, logger *logrus.Logger) *Handler {
	userRepo := repositories.NewUserRepository(db)
	mealRepo := repositories.NewMealRepository(db)
	workoutRepo := repositories.NewWorkoutRepository(db)
	metricsRepo := repositories.NewMetricsRepository(db)
	goalRepo := repositories.NewGoalRepository(db)

	return &Handler{
		SyncController:     controllers.NewSyncController(syncService),
		UsersController:    controllers.NewUsersController(userRepo),
		MealsController:    controllers.NewMealsController(userRepo, mealRepo),
		WorkoutsController: controllers.NewWorkoutsController(userRepo, workoutRepo),
		MetricsController:  controllers.NewMetricsController(userRepo, metricsRepo),
		GoalsController:    controllers.NewGoalsController(userRepo, goalRepo),
		SummaryController:  controllers.NewSummaryController(services.NewSummaryService(userRepo, mealRepo, workoutRepo, metricsRepo)),
		Logger:             logger,
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

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		utils.WriteError(w, &utils.HTTPError{Code: http.StatusGatewayTimeout, Message: "Request timed out"})
	} else if errors.As(err, &httpErr) {
		utils.WriteError(w, httpErr)
	} else if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("Unhandled error")
		}
		utils.WriteError(w, err)
	} else {
		utils.WriteError(w, utils.InternalServerError("Unhandled error"))
	}
}

// decode reads a JSON body into dst, answering 400 itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.HandleErrors(w, utils.WithDetails(utils.BadRequest("invalid request body"), err.Error()))
		return false
	}
	return true
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}
