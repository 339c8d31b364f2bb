package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/schemas"
	"fittrack/src/utils"
)

// MaxPushBatch bounds the changes accepted in a single push.
const MaxPushBatch = 500

type RemoteSyncServiceI interface {
	ApplyPush(ctx context.Context, req schemas.SyncPushRequest) (*schemas.SyncPushResponse, error)
	GetLastSyncDate(ctx context.Context, clientID string) (*time.Time, error)
	GetSyncedDates(ctx context.Context, clientID string, startDate, endDate time.Time) ([]time.Time, error)
	CleanupSyncLogs(ctx context.Context, clientID string, startDate, endDate time.Time) (int64, error)
}

// RemoteSyncService applies pushed outbox batches to the remote store in
// arrival order. Replayed changes are accepted again without effect; a
// different change under a known id is rejected.
type RemoteSyncService struct {
	changeRepo     repositories.RemoteChangeRepository
	clientSyncRepo repositories.ClientSyncRepository
	logger         *logrus.Logger
	now            func() time.Time
}

func NewRemoteSyncService(changeRepo repositories.RemoteChangeRepository, clientSyncRepo repositories.ClientSyncRepository, logger *logrus.Logger) *RemoteSyncService {
	return &RemoteSyncService{
		changeRepo:     changeRepo,
		clientSyncRepo: clientSyncRepo,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *RemoteSyncService) ApplyPush(ctx context.Context, req schemas.SyncPushRequest) (*schemas.SyncPushResponse, error) {
	if req.ClientID == "" {
		return nil, utils.BadRequest("clientId is required")
	}
	if len(req.Changes) > MaxPushBatch {
		return nil, utils.WithDetails(utils.BadRequest("too many changes"), fmt.Sprintf("at most %d changes per push", MaxPushBatch))
	}

	resp := &schemas.SyncPushResponse{
		Accepted: []int64{},
		Rejected: []schemas.SyncPushRejection{},
	}
	for _, change := range req.Changes {
		if reason := validateChange(change); reason != "" {
			resp.Rejected = append(resp.Rejected, schemas.SyncPushRejection{ChangeID: change.ChangeID, Reason: reason})
			continue
		}

		err := s.changeRepo.ApplyChange(ctx, models.RemoteChange{
			ClientID:  req.ClientID,
			ChangeID:  change.ChangeID,
			TableName: change.TableName,
			RecordID:  change.RecordID,
			UserID:    change.UserID,
			Operation: change.Operation,
			Payload:   change.Payload,
			CreatedAt: change.CreatedAt,
		})
		if errors.Is(err, repositories.ErrChangeIDReused) {
			s.logger.WithFields(logrus.Fields{
				"clientId": req.ClientID,
				"changeId": change.ChangeID,
			}).Warn("Client reused a change id")
			resp.Rejected = append(resp.Rejected, schemas.SyncPushRejection{ChangeID: change.ChangeID, Reason: err.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply change %d: %w", change.ChangeID, err)
		}
		resp.Accepted = append(resp.Accepted, change.ChangeID)
	}

	if len(resp.Accepted) > 0 {
		if err := s.clientSyncRepo.MarkClientForDate(ctx, req.ClientID, s.now()); err != nil {
			s.logger.WithError(err).WithField("clientId", req.ClientID).Warn("Failed to record client sync date")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"clientId": req.ClientID,
		"accepted": len(resp.Accepted),
		"rejected": len(resp.Rejected),
	}).Info("Applied sync push")
	return resp, nil
}

func (s *RemoteSyncService) GetLastSyncDate(ctx context.Context, clientID string) (*time.Time, error) {
	return s.clientSyncRepo.GetLastSyncDate(ctx, clientID)
}

// GetSyncedDates lists the days in [startDate, endDate] on which the client
// pushed changes.
func (s *RemoteSyncService) GetSyncedDates(ctx context.Context, clientID string, startDate, endDate time.Time) ([]time.Time, error) {
	return s.clientSyncRepo.GetSyncedDates(ctx, clientID, startDate, endDate.AddDate(0, 0, 1))
}

func (s *RemoteSyncService) CleanupSyncLogs(ctx context.Context, clientID string, startDate, endDate time.Time) (int64, error) {
	deleted, err := s.clientSyncRepo.CleanupSyncLogs(ctx, clientID, startDate, endDate)
	if err != nil {
		return 0, err
	}
	s.logger.WithFields(logrus.Fields{
		"clientId": clientID,
		"deleted":  deleted,
	}).Info("Cleaned up client sync logs")
	return deleted, nil
}

// validateChange returns the rejection reason, or "" when the change is valid.
func validateChange(c schemas.SyncChange) string {
	switch {
	case c.ChangeID <= 0:
		return "changeId must be positive"
	case !models.SyncedTables[c.TableName]:
		return fmt.Sprintf("unknown table %q", c.TableName)
	case c.RecordID == "":
		return "recordId is required"
	case c.UserID == "":
		return "userId is required"
	}

	switch c.Operation {
	case models.OperationInsert, models.OperationUpdate:
		if len(c.Payload) == 0 || !json.Valid(c.Payload) {
			return "payload must be a JSON document"
		}
	case models.OperationDelete:
	default:
		return fmt.Sprintf("unknown operation %q", c.Operation)
	}
	return ""
}
