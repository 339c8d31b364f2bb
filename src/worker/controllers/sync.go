package controllers

import (
	"context"
	"errors"
	"sync"

	"fittrack/src/models"
	"fittrack/src/schemas"
	"fittrack/src/services"
	"fittrack/src/utils"
)

type SyncControllerI interface {
	GetStatus() *schemas.SyncStatusResponse
	GetStats(ctx context.Context) (*models.SyncStats, error)
	SyncNow(ctx context.Context) (*schemas.SyncResultResponse, error)
	StartBackgroundSync() (*schemas.SyncStatusResponse, error)
	StopBackgroundSync() *schemas.SyncStatusResponse
	RetryFailed(ctx context.Context) (*schemas.RetryResponse, error)
	Subscribe() (<-chan *schemas.SyncStatusResponse, func())
}

type SyncController struct {
	SyncService services.SyncServiceI
}

func NewSyncController(syncService services.SyncServiceI) *SyncController {
	return &SyncController{SyncService: syncService}
}

func (c *SyncController) GetStatus() *schemas.SyncStatusResponse {
	return statusResponse(c.SyncService.Status())
}

func (c *SyncController) GetStats(ctx context.Context) (*models.SyncStats, error) {
	stats, err := c.SyncService.GetSyncStats(ctx)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SyncNow runs a pass and waits for it. A pass already in flight yields 409.
func (c *SyncController) SyncNow(ctx context.Context) (*schemas.SyncResultResponse, error) {
	result, err := c.SyncService.SyncNow(ctx)
	switch {
	case errors.Is(err, services.ErrSyncInProgress):
		return nil, utils.Conflict(err.Error())
	case errors.Is(err, services.ErrRemoteNotConfigured):
		return nil, utils.WithDetails(utils.InternalServerError("sync remote not configured"), "set sync.remoteUrl")
	case err != nil:
		return nil, utils.WithDetails(utils.BadGateway("sync failed"), err.Error())
	}
	return &schemas.SyncResultResponse{
		Pushed:   result.Pushed,
		Accepted: result.Accepted,
		Rejected: result.Rejected,
	}, nil
}

func (c *SyncController) StartBackgroundSync() (*schemas.SyncStatusResponse, error) {
	if err := c.SyncService.StartBackgroundSync(); err != nil {
		return nil, err
	}
	return c.GetStatus(), nil
}

func (c *SyncController) StopBackgroundSync() *schemas.SyncStatusResponse {
	c.SyncService.StopBackgroundSync()
	return c.GetStatus()
}

func (c *SyncController) RetryFailed(ctx context.Context) (*schemas.RetryResponse, error) {
	n, err := c.SyncService.RetryFailed(ctx)
	if err != nil {
		return nil, err
	}
	return &schemas.RetryResponse{Requeued: n}, nil
}

// Subscribe streams status changes as response schemas. The first value is
// the current status.
func (c *SyncController) Subscribe() (<-chan *schemas.SyncStatusResponse, func()) {
	updates, unsubscribe := c.SyncService.Subscribe()
	out := make(chan *schemas.SyncStatusResponse, 1)
	out <- c.GetStatus()

	done := make(chan struct{})
	go func() {
		defer close(out)
		for status := range updates {
			select {
			case out <- statusResponse(status):
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return out, func() {
		once.Do(func() {
			close(done)
			unsubscribe()
		})
	}
}

func statusResponse(status services.SyncStatus) *schemas.SyncStatusResponse {
	return &schemas.SyncStatusResponse{
		ClientID:     status.ClientID,
		IsSyncing:    status.IsSyncing,
		SyncEnabled:  status.SyncEnabled,
		LastSyncTime: status.LastSyncTime,
		LastError:    status.LastError,
	}
}
