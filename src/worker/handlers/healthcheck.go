package handlers

import (
	"net/http"
)

// Alive reports the worker is up along with the background sync state.
func (h *Handler) Alive(w http.ResponseWriter, r *http.Request) {
	status := h.SyncController.GetStatus()
	h.respond(w, r, map[string]interface{}{
		"status":      "alive",
		"syncEnabled": status.SyncEnabled,
		"isSyncing":   status.IsSyncing,
	}, http.StatusOK)
}
