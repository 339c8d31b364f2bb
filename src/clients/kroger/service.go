package kroger

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"fittrack/src/config"
	"fittrack/src/schemas"
	"fittrack/src/telemetry"
	"fittrack/src/utils"
	"fittrack/src/utils/requests"
)

// TokenExpiryMargin is subtracted from the token lifetime so a token is
// never used in its last minute.
const TokenExpiryMargin = 60 * time.Second

type KrogerServiceClientI interface {
	GetToken(ctx context.Context) (string, error)
	GetLocations(ctx context.Context, zipCode string, radius, limit int) (*schemas.LocationsResponse, error)
	SearchProducts(ctx context.Context, term, locationID string, limit int) (*schemas.ProductsResponse, error)
}

// KrogerServiceClient talks to the grocery API with a client-credentials
// token cached in memory.
type KrogerServiceClient struct {
	API          *requests.ExternalAPIService
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string

	token *utils.Cache[string]
	group singleflight.Group
}

func NewClient(cfg config.KrogerConfig, api *requests.ExternalAPIService) *KrogerServiceClient {
	return NewClientWithClock(cfg, api, time.Now)
}

func NewClientWithClock(cfg config.KrogerConfig, api *requests.ExternalAPIService, now func() time.Time) *KrogerServiceClient {
	if api == nil {
		api = requests.NewExternalAPIService(nil)
	}
	return &KrogerServiceClient{
		API:          api,
		BaseURL:      cfg.BaseURL,
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scope:        cfg.Scope,
		token:        utils.NewCacheWithClock[string](now),
	}
}

// GetToken returns the cached token or fetches a new one. Concurrent
// callers share a single refresh.
func (c *KrogerServiceClient) GetToken(ctx context.Context) (string, error) {
	if token, ok := c.token.Get(); ok {
		return token, nil
	}

	v, err, _ := c.group.Do("token", func() (interface{}, error) {
		if token, ok := c.token.Get(); ok {
			return token, nil
		}
		resp, err := c.postToken(ctx)
		if err != nil {
			return "", err
		}
		if lifetime := time.Duration(resp.ExpiresIn)*time.Second - TokenExpiryMargin; lifetime > 0 {
			c.token.Set(resp.AccessToken, lifetime)
		}
		return resp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *KrogerServiceClient) postToken(ctx context.Context) (*schemas.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	if c.Scope != "" {
		form.Set("scope", c.Scope)
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.ClientSecret))
	headers := map[string]string{"Authorization": "Basic " + credentials}

	var token schemas.TokenResponse
	if err := c.API.PostFormJSON(ctx, c.TokenURL, form, headers, &token); err != nil {
		return nil, fmt.Errorf("failed to retrieve token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, utils.BadGateway("token response carried no access_token")
	}
	return &token, nil
}

func (c *KrogerServiceClient) GetLocations(ctx context.Context, zipCode string, radius, limit int) (*schemas.LocationsResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "kroger.GetLocations")
	defer span.End()
	span.SetAttributes(attribute.String("zip_code", zipCode))

	params := url.Values{}
	params.Set("filter.zipCode.near", zipCode)
	params.Set("filter.radiusInMiles", strconv.Itoa(radius))
	params.Set("filter.limit", strconv.Itoa(limit))

	var upstream locationsResponse
	if err := c.getJSON(ctx, "/locations", params, &upstream); err != nil {
		return nil, err
	}

	result := &schemas.LocationsResponse{Locations: make([]schemas.Location, 0, len(upstream.Data))}
	for _, l := range upstream.Data {
		result.Locations = append(result.Locations, schemas.Location{
			LocationID: l.LocationID,
			Name:       l.Name,
			Chain:      l.Chain,
			Phone:      l.Phone,
			Address: schemas.Address{
				AddressLine1: l.Address.AddressLine1,
				City:         l.Address.City,
				State:        l.Address.State,
				ZipCode:      l.Address.ZipCode,
			},
		})
	}
	return result, nil
}

func (c *KrogerServiceClient) SearchProducts(ctx context.Context, term, locationID string, limit int) (*schemas.ProductsResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "kroger.SearchProducts")
	defer span.End()
	span.SetAttributes(attribute.String("term", term), attribute.String("location_id", locationID))

	params := url.Values{}
	params.Set("filter.term", term)
	if locationID != "" {
		params.Set("filter.locationId", locationID)
	}
	params.Set("filter.limit", strconv.Itoa(limit))

	var upstream productsResponse
	if err := c.getJSON(ctx, "/products", params, &upstream); err != nil {
		return nil, err
	}

	result := &schemas.ProductsResponse{Products: make([]schemas.Product, 0, len(upstream.Data))}
	for _, p := range upstream.Data {
		product := schemas.Product{
			ProductID:   p.ProductID,
			Description: p.Description,
			Brand:       p.Brand,
			Image:       frontImage(p.Images),
		}
		if len(p.Items) > 0 {
			item := p.Items[0]
			product.Size = item.Size
			if item.Price != nil {
				product.Price = item.Price.Regular
				product.PromoPrice = item.Price.Promo
			}
		}
		result.Products = append(result.Products, product)
	}
	return result, nil
}

// getJSON calls the API with the cached token. A token the API refuses is
// dropped and the call is retried once with a fresh one.
func (c *KrogerServiceClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	token, err := c.GetToken(ctx)
	if err != nil {
		return err
	}
	err = c.API.GetJSON(ctx, c.BaseURL+path, token, params, out)

	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) || httpErr.UpstreamStatus != http.StatusUnauthorized {
		return err
	}
	c.token.Clear()
	if token, err = c.GetToken(ctx); err != nil {
		return err
	}
	return c.API.GetJSON(ctx, c.BaseURL+path, token, params, out)
}

// frontImage picks the medium front image, falling back to the first URL.
func frontImage(images []productImage) string {
	var fallback string
	for _, img := range images {
		for _, size := range img.Sizes {
			if fallback == "" {
				fallback = size.URL
			}
			if img.Perspective == "front" && size.Size == "medium" {
				return size.URL
			}
		}
	}
	return fallback
}
