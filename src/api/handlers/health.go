package handlers

import (
	"fmt"
	"net/http"
)

// Healthcheck is the bare liveness check used by the load balancer.
func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		fmt.Fprintf(w, "Im alive!")
	} else {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
	}
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.HealthController.Ping(r.Context()), http.StatusOK)
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	h.respond(w, r, h.HealthController.GetHealth(ctx), http.StatusOK)
}
