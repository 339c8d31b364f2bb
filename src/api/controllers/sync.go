package controllers

import (
	"context"
	"crypto/subtle"
	"time"

	"fittrack/src/schemas"
	"fittrack/src/services"
	"fittrack/src/utils"
)

type SyncControllerI interface {
	Push(ctx context.Context, token string, req schemas.SyncPushRequest) (*schemas.SyncPushResponse, error)
	GetClientSync(ctx context.Context, token, clientID, startDate, endDate string) (*schemas.ClientSyncResponse, error)
	CleanupClientSync(ctx context.Context, token, clientID, startDate, endDate string) (*schemas.SyncLogCleanupResponse, error)
}

// SyncController serves the remote side of the sync protocol.
type SyncController struct {
	RemoteSync services.RemoteSyncServiceI
	APIKey     string
}

func NewSyncController(remoteSync services.RemoteSyncServiceI, apiKey string) *SyncController {
	return &SyncController{RemoteSync: remoteSync, APIKey: apiKey}
}

func (c *SyncController) Push(ctx context.Context, token string, req schemas.SyncPushRequest) (*schemas.SyncPushResponse, error) {
	if err := c.authorize(token); err != nil {
		return nil, err
	}
	req.ClientID = utils.SanitizeString(req.ClientID)
	return c.RemoteSync.ApplyPush(ctx, req)
}

// GetClientSync reports the last day the client pushed and, when a date range
// is given, every day in it on which it pushed. Days are UTC.
func (c *SyncController) GetClientSync(ctx context.Context, token, clientID, startDate, endDate string) (*schemas.ClientSyncResponse, error) {
	if err := c.authorize(token); err != nil {
		return nil, err
	}
	clientID = utils.SanitizeString(clientID)
	if clientID == "" {
		return nil, utils.BadRequest("clientId is required")
	}
	last, err := c.RemoteSync.GetLastSyncDate(ctx, clientID)
	if err != nil {
		return nil, err
	}
	resp := &schemas.ClientSyncResponse{ClientID: clientID}
	if last != nil {
		resp.LastSyncDate = utils.FormatToYYYYMMDD(last.UTC())
	}

	if startDate == "" && endDate == "" {
		return resp, nil
	}
	start, end, err := parseSyncRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	dates, err := c.RemoteSync.GetSyncedDates(ctx, clientID, start, end)
	if err != nil {
		return nil, err
	}
	resp.SyncedDates = make([]string, 0, len(dates))
	for _, date := range dates {
		resp.SyncedDates = append(resp.SyncedDates, utils.FormatToYYYYMMDD(date.UTC()))
	}
	return resp, nil
}

// CleanupClientSync drops the client's sync log days in [startDate, endDate].
func (c *SyncController) CleanupClientSync(ctx context.Context, token, clientID, startDate, endDate string) (*schemas.SyncLogCleanupResponse, error) {
	if err := c.authorize(token); err != nil {
		return nil, err
	}
	clientID = utils.SanitizeString(clientID)
	if clientID == "" {
		return nil, utils.BadRequest("clientId is required")
	}
	start, end, err := parseSyncRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	deleted, err := c.RemoteSync.CleanupSyncLogs(ctx, clientID, start, end)
	if err != nil {
		return nil, err
	}
	return &schemas.SyncLogCleanupResponse{ClientID: clientID, Deleted: deleted}, nil
}

func parseSyncRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, utils.BadRequest("startDate and endDate are required together")
	}
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, utils.WithDetails(utils.BadRequest("invalid startDate"), err.Error())
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, utils.WithDetails(utils.BadRequest("invalid endDate"), err.Error())
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, utils.BadRequest("endDate must not be before startDate")
	}
	return start, end, nil
}

// authorize checks the bearer token when an API key is configured.
func (c *SyncController) authorize(token string) error {
	if c.RemoteSync == nil {
		return utils.WithDetails(utils.InternalServerError("sync store not configured"), "no remote database configured")
	}
	if c.APIKey == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.APIKey)) != 1 {
		return utils.Unauthorized("invalid sync token")
	}
	return nil
}
