package controllers

import (
	"context"
	"net/http"

	"fittrack/src/clients/aiml"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

// MaxImageBytes bounds uploaded meal photos.
const MaxImageBytes = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type MealPlanControllerI interface {
	AnalyzeImage(ctx context.Context, image []byte) (*schemas.ImageMealPlanResponse, error)
}

type MealPlanController struct {
	AIMLClient aiml.AIMLServiceClientI
}

func NewMealPlanController(aimlClient aiml.AIMLServiceClientI) *MealPlanController {
	return &MealPlanController{AIMLClient: aimlClient}
}

// AnalyzeImage checks the upload is a supported image and asks the vision
// model for its ingredients. The content type is sniffed from the bytes.
func (c *MealPlanController) AnalyzeImage(ctx context.Context, image []byte) (*schemas.ImageMealPlanResponse, error) {
	if c.AIMLClient == nil {
		return nil, notConfigured("AIML")
	}
	if len(image) == 0 {
		return nil, utils.WithDetails(utils.BadRequest("invalid image"), "image is empty")
	}
	if len(image) > MaxImageBytes {
		return nil, utils.WithDetails(utils.BadRequest("invalid image"), "image exceeds 10MB")
	}
	contentType := http.DetectContentType(image)
	if !allowedImageTypes[contentType] {
		return nil, utils.WithDetails(utils.BadRequest("invalid image"), "unsupported content type "+contentType)
	}
	return c.AIMLClient.AnalyzeMealImage(ctx, image, contentType)
}
