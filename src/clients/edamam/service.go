package edamam

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"fittrack/src/config"
	"fittrack/src/schemas"
	"fittrack/src/telemetry"
	"fittrack/src/utils/requests"
	redis_utils "fittrack/src/utils/redis"
)

const cacheTTL = 10 * time.Minute

type EdamamServiceClientI interface {
	SearchRecipes(ctx context.Context, query, diet string, limit int) (*schemas.RecipesResponse, error)
}

// ResponseCache is the subset of the Redis handler used to cache searches.
type ResponseCache interface {
	Get(ctx context.Context, key string, result interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type EdamamServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	AppID   string
	AppKey  string
	Cache   ResponseCache
	Logger  *logrus.Logger
}

// NewClient builds the recipe client. cache may be nil.
func NewClient(cfg config.EdamamConfig, api *requests.ExternalAPIService, cache ResponseCache, logger *logrus.Logger) *EdamamServiceClient {
	if api == nil {
		api = requests.NewExternalAPIService(nil)
	}
	return &EdamamServiceClient{
		API:     api,
		BaseURL: cfg.BaseURL,
		AppID:   cfg.AppID,
		AppKey:  cfg.AppKey,
		Cache:   cache,
		Logger:  logger,
	}
}

type searchResponse struct {
	Hits []struct {
		Recipe struct {
			Label           string   `json:"label"`
			Image           string   `json:"image"`
			URL             string   `json:"url"`
			Yield           float64  `json:"yield"`
			Calories        float64  `json:"calories"`
			IngredientLines []string `json:"ingredientLines"`
		} `json:"recipe"`
	} `json:"hits"`
}

// SearchRecipes returns recipes matching query. Calories are per serving.
func (c *EdamamServiceClient) SearchRecipes(ctx context.Context, query, diet string, limit int) (*schemas.RecipesResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "edamam.SearchRecipes")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	cacheKey := "recipes:" + strings.ToLower(query) + ":" + diet
	var cached schemas.RecipesResponse
	if c.Cache != nil {
		err := c.Cache.Get(ctx, cacheKey, &cached)
		switch {
		case err == nil:
			return truncate(&cached, limit), nil
		case !errors.Is(err, redis_utils.ErrCacheMiss) && c.Logger != nil:
			c.Logger.WithError(err).Warn("recipe cache read failed")
		}
	}

	params := url.Values{}
	params.Set("type", "public")
	params.Set("q", query)
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)
	if diet != "" {
		params.Set("diet", diet)
	}

	var upstream searchResponse
	if err := c.API.GetJSON(ctx, c.BaseURL+"/api/recipes/v2", "", params, &upstream); err != nil {
		return nil, err
	}

	result := &schemas.RecipesResponse{Recipes: make([]schemas.Recipe, 0, len(upstream.Hits))}
	for _, hit := range upstream.Hits {
		r := hit.Recipe
		servings := r.Yield
		calories := r.Calories
		if servings > 0 {
			calories = calories / servings
		}
		ingredients := r.IngredientLines
		if ingredients == nil {
			ingredients = []string{}
		}
		result.Recipes = append(result.Recipes, schemas.Recipe{
			Label:       r.Label,
			Image:       r.Image,
			URL:         r.URL,
			Servings:    servings,
			Calories:    calories,
			Ingredients: ingredients,
		})
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, cacheKey, result, cacheTTL); err != nil && c.Logger != nil {
			c.Logger.WithError(err).Warn("recipe cache write failed")
		}
	}
	return truncate(result, limit), nil
}

func truncate(resp *schemas.RecipesResponse, limit int) *schemas.RecipesResponse {
	if limit > 0 && len(resp.Recipes) > limit {
		return &schemas.RecipesResponse{Recipes: resp.Recipes[:limit]}
	}
	return resp
}
