package syncremote

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"fittrack/src/config"
	"fittrack/src/schemas"
	"fittrack/src/utils"
	"fittrack/src/utils/requests"
)

const (
	pushPath     = "/api/sync/push"
	retryBase    = 200 * time.Millisecond
	retryAttempt = 3
)

// SyncRemoteClientI is the remote store as seen by the sync service.
type SyncRemoteClientI interface {
	Push(ctx context.Context, clientID string, changes []schemas.SyncChange) (*schemas.SyncPushResponse, error)
}

// SyncRemoteClient pushes outbox batches to the API service. Transient
// failures (network errors, 5xx, 429) are retried with exponential backoff;
// anything else is returned at once.
type SyncRemoteClient struct {
	API       *requests.ExternalAPIService
	RemoteURL string
	APIKey    string
	retryBase time.Duration
}

func NewClient(cfg config.SyncConfig, api *requests.ExternalAPIService) *SyncRemoteClient {
	if api == nil {
		api = requests.NewExternalAPIService(nil)
	}
	return &SyncRemoteClient{
		API:       api,
		RemoteURL: cfg.RemoteURL,
		APIKey:    cfg.APIKey,
		retryBase: retryBase,
	}
}

// WithRetryBase overrides the first backoff delay.
func (c *SyncRemoteClient) WithRetryBase(d time.Duration) *SyncRemoteClient {
	c.retryBase = d
	return c
}

func (c *SyncRemoteClient) Push(ctx context.Context, clientID string, changes []schemas.SyncChange) (*schemas.SyncPushResponse, error) {
	backoff := retry.NewExponential(c.retryBase)
	backoff = retry.WithMaxRetries(retryAttempt-1, backoff)

	request := schemas.SyncPushRequest{ClientID: clientID, Changes: changes}
	var response schemas.SyncPushResponse
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		response = schemas.SyncPushResponse{}
		err := c.API.PostJSON(ctx, c.RemoteURL+pushPath, c.APIKey, request, nil, &response)
		if err != nil && transient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func transient(err error) bool {
	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.UpstreamStatus >= http.StatusInternalServerError || httpErr.UpstreamStatus == http.StatusTooManyRequests
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
