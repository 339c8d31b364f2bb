package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/src/schemas"
)

func (h *Handler) AddWeight(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.WeightRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.MetricsController.AddWeight(ctx, chi.URLParam(r, "userID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, entry, http.StatusCreated)
}

func (h *Handler) ListWeights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	entries, err := h.MetricsController.ListWeights(ctx, chi.URLParam(r, "userID"), r.URL.Query().Get("limit"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, entries, http.StatusOK)
}

func (h *Handler) SetWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.WaterRequest
	if !h.decode(w, r, &req) {
		return
	}

	intake, err := h.MetricsController.SetWater(ctx, chi.URLParam(r, "userID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, intake, http.StatusOK)
}

func (h *Handler) GetWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	intake, err := h.MetricsController.GetWater(ctx, chi.URLParam(r, "userID"), r.URL.Query().Get("date"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, intake, http.StatusOK)
}

func (h *Handler) SetSleep(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.SleepRequest
	if !h.decode(w, r, &req) {
		return
	}

	entry, err := h.MetricsController.SetSleep(ctx, chi.URLParam(r, "userID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, entry, http.StatusOK)
}

func (h *Handler) GetSleep(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	entry, err := h.MetricsController.GetSleep(ctx, chi.URLParam(r, "userID"), r.URL.Query().Get("date"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, entry, http.StatusOK)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.GoalRequest
	if !h.decode(w, r, &req) {
		return
	}

	goal, err := h.GoalsController.CreateGoal(ctx, chi.URLParam(r, "userID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, goal, http.StatusCreated)
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	goals, err := h.GoalsController.ListGoals(ctx, chi.URLParam(r, "userID"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, goals, http.StatusOK)
}

func (h *Handler) UpdateGoalStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.GoalStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	goal, err := h.GoalsController.UpdateGoalStatus(ctx, chi.URLParam(r, "userID"), chi.URLParam(r, "goalID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, goal, http.StatusOK)
}
