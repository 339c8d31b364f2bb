package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// manual passes may push a large backlog
const syncNowTimeout = 2 * time.Minute

func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.SyncController.GetStatus(), http.StatusOK)
}

func (h *Handler) GetSyncStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	stats, err := h.SyncController.GetStats(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, stats, http.StatusOK)
}

func (h *Handler) SyncNow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), syncNowTimeout)
	defer cancel()

	result, err := h.SyncController.SyncNow(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) StartSync(w http.ResponseWriter, r *http.Request) {
	status, err := h.SyncController.StartBackgroundSync()
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, status, http.StatusOK)
}

func (h *Handler) StopSync(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.SyncController.StopBackgroundSync(), http.StatusOK)
}

func (h *Handler) RetryFailedSync(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := h.SyncController.RetryFailed(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, result, http.StatusOK)
}

// StreamSyncStatus pushes every status change as a server-sent event until
// the client goes away.
func (h *Handler) StreamSyncStatus(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	updates, unsubscribe := h.SyncController.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for {
		select {
		case <-r.Context().Done():
			return
		case status, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(status)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "event: status\ndata: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
