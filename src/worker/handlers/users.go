package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/src/schemas"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.UsersController.CreateUser(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, user, http.StatusCreated)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := h.UsersController.GetUser(ctx, chi.URLParam(r, "userID"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var req schemas.ProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	profile, err := h.UsersController.UpsertProfile(ctx, chi.URLParam(r, "userID"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, profile, http.StatusOK)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	profile, err := h.UsersController.GetProfile(ctx, chi.URLParam(r, "userID"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, profile, http.StatusOK)
}
