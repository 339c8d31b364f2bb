package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/src/schemas"
)

func (h *Handler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.MealRequest
	if !h.decode(w, r, &req) {
		return
	}

	meal, err := h.MealsController.CreateMeal(ctx, chi.URLParam(r, "userID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, meal, http.StatusCreated)
}

func (h *Handler) ListMeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	meals, err := h.MealsController.ListMeals(ctx, chi.URLParam(r, "userID"), r.URL.Query().Get("date"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, meals, http.StatusOK)
}

func (h *Handler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.MealsController.DeleteMeal(ctx, chi.URLParam(r, "userID"), chi.URLParam(r, "mealID")); err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.WorkoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	workout, err := h.WorkoutsController.CreateWorkout(ctx, chi.URLParam(r, "userID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, workout, http.StatusCreated)
}

func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	workouts, err := h.WorkoutsController.ListWorkouts(ctx, chi.URLParam(r, "userID"), r.URL.Query().Get("date"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, workouts, http.StatusOK)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	userID := chi.URLParam(r, "userID")
	query := r.URL.Query()

	if query.Get("startDate") != "" || query.Get("endDate") != "" {
		summaries, err := h.SummaryController.GetSummaries(ctx, userID, query.Get("startDate"), query.Get("endDate"))
		if err != nil {
			h.HandleErrors(w, err)
			return
		}
		h.respond(w, r, summaries, http.StatusOK)
		return
	}

	summary, err := h.SummaryController.GetDailySummary(ctx, userID, query.Get("date"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, summary, http.StatusOK)
}
