package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"

	"fittrack/src/schemas"
	"fittrack/src/utils"
)

// max request body for a push of MaxPushBatch changes
const maxPushBodyBytes = 8 << 20

func (h *Handler) PushChanges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	token := jwtauth.TokenFromHeader(r)

	var req schemas.SyncPushRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPushBodyBytes)).Decode(&req); err != nil {
		h.HandleErrors(w, utils.WithDetails(utils.BadRequest("invalid request body"), err.Error()))
		return
	}

	resp, err := h.SyncController.Push(ctx, token, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) GetClientSync(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	token := jwtauth.TokenFromHeader(r)
	clientID := chi.URLParam(r, "clientID")
	query := r.URL.Query()

	resp, err := h.SyncController.GetClientSync(ctx, token, clientID, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) DeleteClientSyncLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	token := jwtauth.TokenFromHeader(r)
	clientID := chi.URLParam(r, "clientID")
	query := r.URL.Query()

	resp, err := h.SyncController.CleanupClientSync(ctx, token, clientID, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, resp, http.StatusOK)
}
