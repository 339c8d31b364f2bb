package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fittrack/src/utils"
)

// DefaultTimeout bounds every outgoing request made through ExternalAPIService.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an upstream error body is echoed back as details.
const maxErrorBody = 512

// ExternalAPIService is a struct representing a configurable external service
type ExternalAPIService struct {
	client *http.Client
}

// NewExternalAPIService creates a new instance of ExternalAPIService. A nil
// client gets a client with DefaultTimeout.
func NewExternalAPIService(client *http.Client) *ExternalAPIService {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &ExternalAPIService{client: client}
}

// makeRequest is a helper function to make HTTP requests, supporting optional query parameters
func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint, token string, params url.Values, body interface{}, headers map[string]string) (*http.Response, error) {
	var (
		reader      io.Reader
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		jsonBody, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}
	return s.do(ctx, method, endpoint, token, params, reader, contentType, headers)
}

func (s *ExternalAPIService) do(ctx context.Context, method, endpoint, token string, params url.Values, body io.Reader, contentType string, headers map[string]string) (*http.Response, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &utils.HTTPError{
			Code:    http.StatusBadGateway,
			Message: fmt.Sprintf("upstream %s %s returned %d", method, req.URL.Host, resp.StatusCode),
			Details: string(detail),

			UpstreamStatus: resp.StatusCode,
		}
	}
	return resp, nil
}

// Get makes a GET request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Get(ctx context.Context, endpoint, token string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodGet, endpoint, token, params, nil, nil)
}

// PostWithHeaders makes a POST request with custom headers
func (s *ExternalAPIService) PostWithHeaders(ctx context.Context, endpoint, token string, body interface{}, headers map[string]string) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodPost, endpoint, token, nil, body, headers)
}

// PostForm makes a form-encoded POST, as used by OAuth token endpoints.
func (s *ExternalAPIService) PostForm(ctx context.Context, endpoint string, form url.Values, headers map[string]string) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodPost, endpoint, "", nil, form, headers)
}

// PostFormJSON performs a form-encoded POST and decodes the JSON response into out.
func (s *ExternalAPIService) PostFormJSON(ctx context.Context, endpoint string, form url.Values, headers map[string]string, out interface{}) error {
	resp, err := s.PostForm(ctx, endpoint, form, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

// GetJSON performs a GET and decodes the JSON response into out.
func (s *ExternalAPIService) GetJSON(ctx context.Context, endpoint, token string, params url.Values, out interface{}) error {
	resp, err := s.Get(ctx, endpoint, token, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

// PostJSON performs a POST and decodes the JSON response into out.
func (s *ExternalAPIService) PostJSON(ctx context.Context, endpoint, token string, body interface{}, headers map[string]string, out interface{}) error {
	resp, err := s.PostWithHeaders(ctx, endpoint, token, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

func decode(resp *http.Response, out interface{}) error {
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if out == nil || len(responseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", resp.Request.URL.Host, err)
	}
	return nil
}
