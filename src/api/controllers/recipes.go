package controllers

import (
	"context"
	"strings"

	"fittrack/src/clients/edamam"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

const (
	defaultRecipes = 10
	maxRecipes     = 100
)

var edamamDiets = map[string]bool{
	"balanced":     true,
	"high-fiber":   true,
	"high-protein": true,
	"low-carb":     true,
	"low-fat":      true,
	"low-sodium":   true,
}

type RecipesControllerI interface {
	SearchRecipes(ctx context.Context, query, diet, limit string) (*schemas.RecipesResponse, error)
}

type RecipesController struct {
	EdamamClient edamam.EdamamServiceClientI
}

func NewRecipesController(edamamClient edamam.EdamamServiceClientI) *RecipesController {
	return &RecipesController{EdamamClient: edamamClient}
}

func (c *RecipesController) SearchRecipes(ctx context.Context, query, diet, limit string) (*schemas.RecipesResponse, error) {
	if c.EdamamClient == nil {
		return nil, notConfigured("Edamam")
	}
	query = utils.SanitizeString(query)
	if query == "" {
		return nil, utils.WithDetails(utils.BadRequest("invalid q"), "q is required")
	}
	diet = strings.ToLower(utils.SanitizeString(diet))
	if diet != "" && !edamamDiets[diet] {
		return nil, utils.WithDetails(utils.BadRequest("invalid diet"), "unknown diet "+diet)
	}
	n, err := boundedInt("limit", limit, defaultRecipes, maxRecipes)
	if err != nil {
		return nil, err
	}
	return c.EdamamClient.SearchRecipes(ctx, query, diet, n)
}
