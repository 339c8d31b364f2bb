package handlers

import (
	"errors"
	"io"
	"net/http"

	"fittrack/src/api/controllers"
	"fittrack/src/utils"
)

// multipart framing allowance on top of the image itself
const multipartOverhead = 1 << 20

func (h *Handler) PostImageMealPlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, controllers.MaxImageBytes+multipartOverhead)
	if err := r.ParseMultipartForm(controllers.MaxImageBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleErrors(w, utils.WithDetails(utils.BadRequest("invalid image"), "image exceeds 10MB"))
			return
		}
		h.HandleErrors(w, utils.WithDetails(utils.BadRequest("invalid form"), "expected a multipart form with an image field"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("image")
	if err != nil {
		h.HandleErrors(w, utils.WithDetails(utils.BadRequest("invalid image"), "image is required"))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, controllers.MaxImageBytes+1))
	if err != nil {
		h.HandleErrors(w, utils.WithDetails(utils.BadRequest("invalid image"), err.Error()))
		return
	}

	plan, err := h.MealPlanController.AnalyzeImage(ctx, image)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, plan, http.StatusOK)
}
