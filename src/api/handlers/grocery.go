package handlers

import (
	"net/http"
)

func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	query := r.URL.Query()
	locations, err := h.GroceryController.GetLocations(ctx, query.Get("zipCode"), query.Get("radius"), query.Get("limit"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, locations, http.StatusOK)
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	query := r.URL.Query()
	products, err := h.GroceryController.SearchProducts(ctx, query.Get("term"), query.Get("locationId"), query.Get("limit"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, products, http.StatusOK)
}

func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	query := r.URL.Query()
	recipes, err := h.RecipesController.SearchRecipes(ctx, query.Get("q"), query.Get("diet"), query.Get("limit"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, recipes, http.StatusOK)
}
