package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/src/api"
	"fittrack/src/config"
	"fittrack/src/schemas"
	"fittrack/src/testutil"
	"fittrack/src/utils"
)

type fakeKroger struct {
	mu        sync.Mutex
	zipCode   string
	radius    int
	limit     int
	term      string
	err       error
	locations *schemas.LocationsResponse
}

func (f *fakeKroger) GetToken(context.Context) (string, error) { return "token", nil }

func (f *fakeKroger) GetLocations(_ context.Context, zipCode string, radius, limit int) (*schemas.LocationsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.zipCode, f.radius, f.limit = zipCode, radius, limit
	if f.err != nil {
		return nil, f.err
	}
	if f.locations != nil {
		return f.locations, nil
	}
	return &schemas.LocationsResponse{Locations: []schemas.Location{}}, nil
}

func (f *fakeKroger) SearchProducts(_ context.Context, term, _ string, limit int) (*schemas.ProductsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.term, f.limit = term, limit
	if f.err != nil {
		return nil, f.err
	}
	return &schemas.ProductsResponse{Products: []schemas.Product{{ProductID: "0001", Description: "Bananas"}}}, nil
}

type fakeEdamam struct {
	query, diet string
	limit       int
}

func (f *fakeEdamam) SearchRecipes(_ context.Context, query, diet string, limit int) (*schemas.RecipesResponse, error) {
	f.query, f.diet, f.limit = query, diet, limit
	return &schemas.RecipesResponse{Recipes: []schemas.Recipe{{Label: "Oatmeal", Calories: 150, Servings: 2, Ingredients: []string{"oats"}}}}, nil
}

type fakeAIML struct {
	contentType string
	size        int
}

func (f *fakeAIML) AnalyzeMealImage(_ context.Context, image []byte, contentType string) (*schemas.ImageMealPlanResponse, error) {
	f.contentType, f.size = contentType, len(image)
	return &schemas.ImageMealPlanResponse{Ingredients: []schemas.Ingredient{{Name: "rice", Quantity: "1 cup"}}}, nil
}

type fakeRemoteSync struct {
	req        schemas.SyncPushRequest
	last       *time.Time
	synced     []time.Time
	rangeStart time.Time
	rangeEnd   time.Time
	cleaned    int64
}

func (f *fakeRemoteSync) ApplyPush(_ context.Context, req schemas.SyncPushRequest) (*schemas.SyncPushResponse, error) {
	f.req = req
	resp := &schemas.SyncPushResponse{Accepted: []int64{}, Rejected: []schemas.SyncPushRejection{}}
	for _, c := range req.Changes {
		resp.Accepted = append(resp.Accepted, c.ChangeID)
	}
	return resp, nil
}

func (f *fakeRemoteSync) GetLastSyncDate(context.Context, string) (*time.Time, error) {
	return f.last, nil
}

func (f *fakeRemoteSync) GetSyncedDates(_ context.Context, _ string, start, end time.Time) ([]time.Time, error) {
	f.rangeStart, f.rangeEnd = start, end
	return f.synced, nil
}

func (f *fakeRemoteSync) CleanupSyncLogs(_ context.Context, _ string, start, end time.Time) (int64, error) {
	f.rangeStart, f.rangeEnd = start, end
	return f.cleaned, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func testConfig(t *testing.T) *config.Config {
	cfg := testutil.LoadTestConfig(t)
	cfg.ExternalClients.Kroger.ClientID = ""
	cfg.ExternalClients.Kroger.ClientSecret = ""
	cfg.ExternalClients.Edamam.AppID = ""
	cfg.ExternalClients.Edamam.AppKey = ""
	cfg.ExternalClients.AIML.APIKey = ""
	cfg.Sync.APIKey = ""
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config, deps *api.Dependencies) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ts := httptest.NewServer(api.NewServer(cfg, deps, logger))
	t.Cleanup(ts.Close)
	return ts
}

func decodeBody(t *testing.T, res *http.Response, out interface{}) {
	t.Helper()
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}

func TestPing(t *testing.T) {
	ts := newTestServer(t, testConfig(t), &api.Dependencies{})

	res, err := http.Get(ts.URL + "/api/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body schemas.PingResponse
	decodeBody(t, res, &body)
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Timestamp)
}

func TestAlive(t *testing.T) {
	ts := newTestServer(t, testConfig(t), &api.Dependencies{})

	res, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "Im alive!", string(body))
}

func TestHealth(t *testing.T) {
	t.Run("reports not_configured without keys", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{})

		res, err := http.Get(ts.URL + "/api/health")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body schemas.HealthResponse
		decodeBody(t, res, &body)
		assert.Equal(t, "ok", body.Status)
		for _, name := range []string{"kroger", "edamam", "aiml", "database", "redis"} {
			assert.Equal(t, utils.StatusNotConfigured, body.Services[name], name)
		}
	})

	t.Run("pings configured stores", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ExternalClients.Kroger.ClientID = "id"
		cfg.ExternalClients.Kroger.ClientSecret = "secret"
		ts := newTestServer(t, cfg, &api.Dependencies{
			DB:    fakePinger{},
			Redis: fakePinger{err: errors.New("connection refused")},
		})

		res, err := http.Get(ts.URL + "/api/health")
		require.NoError(t, err)

		var body schemas.HealthResponse
		decodeBody(t, res, &body)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, utils.StatusConfigured, body.Services["kroger"])
		assert.Equal(t, utils.StatusConnected, body.Services["database"])
		assert.Equal(t, utils.StatusError, body.Services["redis"])
	})
}

func TestRateLimit(t *testing.T) {
	get := func(ts *httptest.Server, ip string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/ping", nil)
		require.NoError(t, err)
		req.Header.Set("X-Real-IP", ip)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return res
	}

	t.Run("limits per client", func(t *testing.T) {
		cfg := testConfig(t)
		require.Equal(t, 5, cfg.RateLimit.Limit)
		ts := newTestServer(t, cfg, &api.Dependencies{})

		for i := 0; i < cfg.RateLimit.Limit; i++ {
			res := get(ts, "10.0.0.1")
			res.Body.Close()
			require.Equal(t, http.StatusOK, res.StatusCode, "request %d", i+1)
		}

		res := get(ts, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
		assert.NotEmpty(t, res.Header.Get("Retry-After"))
		assert.Equal(t, "0", res.Header.Get("X-RateLimit-Remaining"))
		var body map[string]string
		decodeBody(t, res, &body)
		assert.Equal(t, "Too many requests", body["error"])
		assert.NotEmpty(t, body["details"])
	})

	t.Run("ignores forwarded headers by default", func(t *testing.T) {
		cfg := testConfig(t)
		ts := newTestServer(t, cfg, &api.Dependencies{})

		for i := 0; i < cfg.RateLimit.Limit; i++ {
			res := get(ts, fmt.Sprintf("10.0.1.%d", i))
			res.Body.Close()
			require.Equal(t, http.StatusOK, res.StatusCode, "request %d", i+1)
		}

		res := get(ts, "10.0.1.200")
		res.Body.Close()
		assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	})

	t.Run("trusted proxy keys by forwarded ip", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Service.TrustProxy = true
		ts := newTestServer(t, cfg, &api.Dependencies{})

		for i := 0; i < cfg.RateLimit.Limit; i++ {
			res := get(ts, "10.0.0.1")
			res.Body.Close()
			require.Equal(t, http.StatusOK, res.StatusCode, "request %d", i+1)
		}
		res := get(ts, "10.0.0.1")
		res.Body.Close()
		assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)

		other := get(ts, "10.0.0.2")
		other.Body.Close()
		assert.Equal(t, http.StatusOK, other.StatusCode)
	})
}

func TestLocations(t *testing.T) {
	t.Run("validates zip code", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{Kroger: &fakeKroger{}})

		res, err := http.Get(ts.URL + "/api/locations?zipCode=abc")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		var body map[string]string
		decodeBody(t, res, &body)
		assert.Equal(t, "invalid zipCode", body["error"])
		assert.NotEmpty(t, body["details"])
	})

	t.Run("applies defaults", func(t *testing.T) {
		kroger := &fakeKroger{locations: &schemas.LocationsResponse{Locations: []schemas.Location{{LocationID: "01400943", Name: "Kroger"}}}}
		ts := newTestServer(t, testConfig(t), &api.Dependencies{Kroger: kroger})

		res, err := http.Get(ts.URL + "/api/locations?zipCode=45202")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body schemas.LocationsResponse
		decodeBody(t, res, &body)
		require.Len(t, body.Locations, 1)
		assert.Equal(t, "01400943", body.Locations[0].LocationID)
		assert.Equal(t, "45202", kroger.zipCode)
		assert.Equal(t, 10, kroger.radius)
		assert.Equal(t, 10, kroger.limit)
	})

	t.Run("rejects out of range limit", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{Kroger: &fakeKroger{}})

		res, err := http.Get(ts.URL + "/api/locations?zipCode=45202&limit=500")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("not configured", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{})

		res, err := http.Get(ts.URL + "/api/locations?zipCode=45202")
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

		var body map[string]string
		decodeBody(t, res, &body)
		assert.Equal(t, "Kroger API not configured", body["error"])
	})

	t.Run("upstream failure", func(t *testing.T) {
		kroger := &fakeKroger{err: utils.WithDetails(utils.BadGateway("upstream request failed"), "status 503")}
		ts := newTestServer(t, testConfig(t), &api.Dependencies{Kroger: kroger})

		res, err := http.Get(ts.URL + "/api/locations?zipCode=45202")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, res.StatusCode)

		var body map[string]string
		decodeBody(t, res, &body)
		assert.Equal(t, "upstream request failed", body["error"])
		assert.Equal(t, "status 503", body["details"])
	})

	t.Run("timeout", func(t *testing.T) {
		kroger := &fakeKroger{err: context.DeadlineExceeded}
		ts := newTestServer(t, testConfig(t), &api.Dependencies{Kroger: kroger})

		res, err := http.Get(ts.URL + "/api/locations?zipCode=45202")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusGatewayTimeout, res.StatusCode)
	})
}

func TestProducts(t *testing.T) {
	kroger := &fakeKroger{}
	ts := newTestServer(t, testConfig(t), &api.Dependencies{Kroger: kroger})

	res, err := http.Get(ts.URL + "/api/products?term=ab")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = http.Get(ts.URL + "/api/products?term=banana&limit=5")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body schemas.ProductsResponse
	decodeBody(t, res, &body)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "banana", kroger.term)
	assert.Equal(t, 5, kroger.limit)
}

func TestRecipes(t *testing.T) {
	edamam := &fakeEdamam{}
	ts := newTestServer(t, testConfig(t), &api.Dependencies{Edamam: edamam})

	res, err := http.Get(ts.URL + "/api/recipes")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = http.Get(ts.URL + "/api/recipes?q=oatmeal&diet=paleo")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = http.Get(ts.URL + "/api/recipes?q=oatmeal&diet=High-Protein")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body schemas.RecipesResponse
	decodeBody(t, res, &body)
	require.Len(t, body.Recipes, 1)
	assert.Equal(t, "oatmeal", edamam.query)
	assert.Equal(t, "high-protein", edamam.diet)
	assert.Equal(t, 10, edamam.limit)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestImageMealPlan(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	t.Run("forwards image", func(t *testing.T) {
		aiml := &fakeAIML{}
		ts := newTestServer(t, testConfig(t), &api.Dependencies{AIML: aiml})

		body, contentType := multipartBody(t, "image", "meal.png", png)
		res, err := http.Post(ts.URL+"/api/image-meal-plan", contentType, body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var plan schemas.ImageMealPlanResponse
		decodeBody(t, res, &plan)
		require.Len(t, plan.Ingredients, 1)
		assert.Equal(t, "rice", plan.Ingredients[0].Name)
		assert.Equal(t, "image/png", aiml.contentType)
		assert.Equal(t, len(png), aiml.size)
	})

	t.Run("rejects non images", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{AIML: &fakeAIML{}})

		body, contentType := multipartBody(t, "image", "notes.txt", []byte("just some text"))
		res, err := http.Post(ts.URL+"/api/image-meal-plan", contentType, body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		var envelope map[string]string
		decodeBody(t, res, &envelope)
		assert.Equal(t, "invalid image", envelope["error"])
		assert.Contains(t, envelope["details"], "text/plain")
	})

	t.Run("requires image field", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{AIML: &fakeAIML{}})

		body, contentType := multipartBody(t, "photo", "meal.png", png)
		res, err := http.Post(ts.URL+"/api/image-meal-plan", contentType, body)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("requires multipart", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{AIML: &fakeAIML{}})

		res, err := http.Post(ts.URL+"/api/image-meal-plan", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestSyncPush(t *testing.T) {
	payload := `{"clientId":"device-1","changes":[{"changeId":1,"tableName":"users","recordId":"u1","userId":"u1","operation":"insert","payload":{"id":"u1"}}]}`

	push := func(ts *httptest.Server, token, body string) *http.Response {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/sync/push", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return res
	}

	t.Run("requires the api key", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sync.APIKey = "secret"
		ts := newTestServer(t, cfg, &api.Dependencies{RemoteSync: &fakeRemoteSync{}})

		res := push(ts, "", payload)
		res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

		res = push(ts, "wrong", payload)
		res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("applies changes", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sync.APIKey = "secret"
		remote := &fakeRemoteSync{}
		ts := newTestServer(t, cfg, &api.Dependencies{RemoteSync: remote})

		res := push(ts, "secret", payload)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body schemas.SyncPushResponse
		decodeBody(t, res, &body)
		assert.Equal(t, []int64{1}, body.Accepted)
		assert.Empty(t, body.Rejected)
		assert.Equal(t, "device-1", remote.req.ClientID)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{RemoteSync: &fakeRemoteSync{}})

		res := push(ts, "", "{not json")
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("not configured", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{})

		res := push(ts, "", payload)
		res.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})

	t.Run("last sync date", func(t *testing.T) {
		last := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
		ts := newTestServer(t, testConfig(t), &api.Dependencies{RemoteSync: &fakeRemoteSync{last: &last}})

		res, err := http.Get(ts.URL + "/api/sync/clients/device-1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body schemas.ClientSyncResponse
		decodeBody(t, res, &body)
		assert.Equal(t, "device-1", body.ClientID)
		assert.Equal(t, "2024-03-09", body.LastSyncDate)
		assert.Nil(t, body.SyncedDates)
	})

	t.Run("sync dates are reported in UTC", func(t *testing.T) {
		// pgx hands back timestamptz in the server's zone
		est := time.FixedZone("EST", -5*3600)
		last := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).In(est)
		remote := &fakeRemoteSync{
			last:   &last,
			synced: []time.Time{time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC).In(est), last},
		}
		ts := newTestServer(t, testConfig(t), &api.Dependencies{RemoteSync: remote})

		res, err := http.Get(ts.URL + "/api/sync/clients/device-1?startDate=2024-03-01&endDate=2024-03-05")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body schemas.ClientSyncResponse
		decodeBody(t, res, &body)
		assert.Equal(t, "2024-03-05", body.LastSyncDate)
		assert.Equal(t, []string{"2024-03-04", "2024-03-05"}, body.SyncedDates)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), remote.rangeStart)
		assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), remote.rangeEnd)
	})

	t.Run("synced dates validate the range", func(t *testing.T) {
		ts := newTestServer(t, testConfig(t), &api.Dependencies{RemoteSync: &fakeRemoteSync{}})

		for _, query := range []string{"?startDate=2024-03-01", "?startDate=2024-03-05&endDate=2024-03-01", "?startDate=03/01/2024&endDate=2024-03-05"} {
			res, err := http.Get(ts.URL + "/api/sync/clients/device-1" + query)
			require.NoError(t, err)
			res.Body.Close()
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, query)
		}
	})

	t.Run("cleans up sync logs", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sync.APIKey = "secret"
		remote := &fakeRemoteSync{cleaned: 3}
		ts := newTestServer(t, cfg, &api.Dependencies{RemoteSync: remote})

		url := ts.URL + "/api/sync/clients/device-1/logs?startDate=2024-01-01&endDate=2024-01-31"
		req, err := http.NewRequest(http.MethodDelete, url, nil)
		require.NoError(t, err)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

		req, err = http.NewRequest(http.MethodDelete, url, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer secret")
		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body schemas.SyncLogCleanupResponse
		decodeBody(t, res, &body)
		assert.Equal(t, schemas.SyncLogCleanupResponse{ClientID: "device-1", Deleted: 3}, body)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), remote.rangeEnd)

		req, err = http.NewRequest(http.MethodDelete, ts.URL+"/api/sync/clients/device-1/logs", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer secret")
		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestDocs(t *testing.T) {
	ts := newTestServer(t, testConfig(t), &api.Dependencies{})

	res, err := http.Get(ts.URL + "/api/swagger.json")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var doc map[string]interface{}
	decodeBody(t, res, &doc)
	assert.Equal(t, "3.0.3", doc["openapi"])
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	for _, path := range []string{"/api/ping", "/api/health", "/api/locations", "/api/products", "/api/image-meal-plan", "/api/sync/clients/{clientID}/logs"} {
		assert.Contains(t, paths, path)
	}

	res, err = http.Get(ts.URL + "/api/docs")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
	page, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(page), "/api/swagger.json")
}
