package requests_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/src/utils"
	"fittrack/src/utils/requests"
)

func TestExternalAPIService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "apple", r.URL.Query().Get("q"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"name":"apple"}`)
		case "/form":
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			_, _ = io.WriteString(w, `{"ok":true}`)
		case "/post":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "yes", r.Header.Get("X-Extra"))
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"a":1}`, string(body))
			_, _ = io.WriteString(w, `{"ok":true}`)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "down for maintenance")
		}
	}))
	defer server.Close()

	api := requests.NewExternalAPIService(nil)
	ctx := context.Background()

	t.Run("GetJSON", func(t *testing.T) {
		var out struct{ Name string }
		require.NoError(t, api.GetJSON(ctx, server.URL+"/json", "tok", url.Values{"q": {"apple"}}, &out))
		assert.Equal(t, "apple", out.Name)
	})

	t.Run("PostFormJSON", func(t *testing.T) {
		var out struct{ OK bool }
		form := url.Values{"grant_type": {"client_credentials"}}
		require.NoError(t, api.PostFormJSON(ctx, server.URL+"/form", form, nil, &out))
		assert.True(t, out.OK)
	})

	t.Run("PostJSON", func(t *testing.T) {
		var out struct{ OK bool }
		require.NoError(t, api.PostJSON(ctx, server.URL+"/post", "", map[string]int{"a": 1}, map[string]string{"X-Extra": "yes"}, &out))
		assert.True(t, out.OK)
	})

	t.Run("non-2xx becomes a bad gateway error", func(t *testing.T) {
		err := api.GetJSON(ctx, server.URL+"/down", "", nil, nil)
		var httpErr *utils.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadGateway, httpErr.Code)
		assert.Contains(t, httpErr.Message, "503")
		assert.Equal(t, "down for maintenance", httpErr.Details)
	})
}
