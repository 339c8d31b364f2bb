package controllers

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"fittrack/src/clients/kroger"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

const (
	defaultRadiusMiles  = 10
	maxRadiusMiles      = 100
	defaultLocations    = 10
	maxLocations        = 200
	defaultProducts     = 10
	maxProducts         = 50
	minProductTermChars = 3
)

var zipCodePattern = regexp.MustCompile(`^\d{5}$`)

type GroceryControllerI interface {
	GetLocations(ctx context.Context, zipCode, radius, limit string) (*schemas.LocationsResponse, error)
	SearchProducts(ctx context.Context, term, locationID, limit string) (*schemas.ProductsResponse, error)
}

type GroceryController struct {
	KrogerClient kroger.KrogerServiceClientI
}

func NewGroceryController(krogerClient kroger.KrogerServiceClientI) *GroceryController {
	return &GroceryController{KrogerClient: krogerClient}
}

func (c *GroceryController) GetLocations(ctx context.Context, zipCode, radius, limit string) (*schemas.LocationsResponse, error) {
	if c.KrogerClient == nil {
		return nil, notConfigured("Kroger")
	}
	zipCode = utils.SanitizeString(zipCode)
	if !zipCodePattern.MatchString(zipCode) {
		return nil, utils.WithDetails(utils.BadRequest("invalid zipCode"), "zipCode must be a 5 digit US zip code")
	}
	radiusMiles, err := boundedInt("radius", radius, defaultRadiusMiles, maxRadiusMiles)
	if err != nil {
		return nil, err
	}
	n, err := boundedInt("limit", limit, defaultLocations, maxLocations)
	if err != nil {
		return nil, err
	}
	return c.KrogerClient.GetLocations(ctx, zipCode, radiusMiles, n)
}

func (c *GroceryController) SearchProducts(ctx context.Context, term, locationID, limit string) (*schemas.ProductsResponse, error) {
	if c.KrogerClient == nil {
		return nil, notConfigured("Kroger")
	}
	term = utils.SanitizeString(term)
	if len(term) < minProductTermChars {
		return nil, utils.WithDetails(utils.BadRequest("invalid term"), fmt.Sprintf("term must be at least %d characters", minProductTermChars))
	}
	n, err := boundedInt("limit", limit, defaultProducts, maxProducts)
	if err != nil {
		return nil, err
	}
	return c.KrogerClient.SearchProducts(ctx, term, utils.SanitizeString(locationID), n)
}

// boundedInt parses an optional positive integer query value.
func boundedInt(name, value string, def, max int) (int, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > max {
		return 0, utils.WithDetails(utils.BadRequest("invalid "+name), fmt.Sprintf("%s must be an integer between 1 and %d", name, max))
	}
	return n, nil
}

func notConfigured(service string) error {
	return utils.WithDetails(utils.InternalServerError(service+" API not configured"), "missing credentials for "+service)
}
