package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"fittrack/src/clients/syncremote"
	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/scheduler"
	"fittrack/src/schemas"
	"fittrack/src/telemetry"
)

var (
	// ErrSyncInProgress is returned by SyncNow while another pass is running.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrRemoteNotConfigured is returned when no remote store was configured.
	ErrRemoteNotConfigured = errors.New("sync remote not configured")
)

// SyncStatus is the observable state of the sync service.
type SyncStatus struct {
	ClientID     string
	IsSyncing    bool
	SyncEnabled  bool
	LastSyncTime *time.Time
	LastError    string
}

type SyncResult struct {
	Pushed   int
	Accepted int
	Rejected int
}

type SyncServiceI interface {
	Initialize(ctx context.Context) error
	StartBackgroundSync() error
	StopBackgroundSync()
	SyncNow(ctx context.Context) (*SyncResult, error)
	RetryFailed(ctx context.Context) (int64, error)
	GetSyncStats(ctx context.Context) (models.SyncStats, error)
	Status() SyncStatus
	Subscribe() (<-chan SyncStatus, func())
	IsSyncing() bool
	LastSyncTime() *time.Time
	SyncEnabled() bool
}

type SyncOptions struct {
	// ClientID overrides the device id persisted with the local store.
	ClientID  string
	Interval  time.Duration
	BatchSize int
	Retention time.Duration
	// PassTimeout bounds a background pass. Defaults to Interval.
	PassTimeout time.Duration
}

// SyncService pushes the local outbox to the remote store. Passes never
// overlap: the syncing flag is checked and set under mu.
type SyncService struct {
	syncLogRepo repositories.SyncLogRepository
	remote      syncremote.SyncRemoteClientI
	opts        SyncOptions
	logger      *logrus.Logger
	now         func() time.Time

	mu          sync.Mutex
	initialized bool
	clientID    string
	syncing     bool
	lastSync    *time.Time
	lastError   string
	task        *scheduler.ScheduledTask
	subscribers map[int]chan SyncStatus
	nextSubID   int
}

// NewSyncService builds the service. remote may be nil when no remote store
// is configured; SyncNow then fails with ErrRemoteNotConfigured.
func NewSyncService(syncLogRepo repositories.SyncLogRepository, remote syncremote.SyncRemoteClientI, opts SyncOptions, logger *logrus.Logger) *SyncService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Minute
	}
	if opts.PassTimeout <= 0 {
		opts.PassTimeout = opts.Interval
	}
	return &SyncService{
		syncLogRepo: syncLogRepo,
		remote:      remote,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
		subscribers: make(map[int]chan SyncStatus),
	}
}

// Initialize loads the last sync time and the device id, generating and
// persisting one on first run. Calling it again is a no-op.
func (s *SyncService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	last, err := s.syncLogRepo.GetLastSyncTime(ctx)
	if err != nil {
		return fmt.Errorf("failed to load last sync time: %w", err)
	}

	clientID := s.opts.ClientID
	if clientID == "" {
		clientID, err = s.syncLogRepo.GetOrCreateClientID(ctx, uuid.NewString())
		if err != nil {
			return fmt.Errorf("failed to load client id: %w", err)
		}
	}

	s.lastSync = last
	s.clientID = clientID
	s.initialized = true
	s.logger.WithField("clientId", clientID).Debug("Sync service initialized")
	return nil
}

// StartBackgroundSync schedules a pass every interval. Calling it while the
// loop is running does nothing.
func (s *SyncService) StartBackgroundSync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task != nil {
		return nil
	}
	task, err := scheduler.Every(s.opts.Interval, s.logger, s.backgroundPass)
	if err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}
	s.task = task
	s.logger.WithField("interval", s.opts.Interval.String()).Info("Background sync started")
	s.publishLocked()
	return nil
}

// StopBackgroundSync stops the loop and waits for a running background pass.
func (s *SyncService) StopBackgroundSync() {
	s.mu.Lock()
	task := s.task
	s.task = nil
	if task != nil {
		s.publishLocked()
	}
	s.mu.Unlock()

	if task != nil {
		task.Cancel()
		s.logger.Info("Background sync stopped")
	}
}

func (s *SyncService) backgroundPass() {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.PassTimeout)
	defer cancel()

	result, err := s.SyncNow(ctx)
	switch {
	case errors.Is(err, ErrSyncInProgress):
		s.logger.Debug("Skipping background sync, a pass is already running")
	case err != nil:
		s.logger.WithError(err).Warn("Background sync failed")
	case result.Pushed > 0:
		s.logger.WithFields(logrus.Fields{
			"pushed":   result.Pushed,
			"accepted": result.Accepted,
			"rejected": result.Rejected,
		}).Info("Background sync completed")
	}
}

// SyncNow pushes every pending outbox entry, oldest first, in batches.
// Accepted entries are marked synced and rejected ones failed. A transport
// error aborts the pass and leaves the rest pending.
func (s *SyncService) SyncNow(ctx context.Context) (*SyncResult, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	s.syncing = true
	s.publishLocked()
	s.mu.Unlock()

	result, err := s.runPass(ctx)

	s.mu.Lock()
	s.syncing = false
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.publishLocked()
	s.mu.Unlock()

	return result, err
}

func (s *SyncService) runPass(ctx context.Context) (result *SyncResult, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "sync.pass")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if s.remote == nil {
		return nil, ErrRemoteNotConfigured
	}

	result = &SyncResult{}
	for {
		entries, err := s.syncLogRepo.ListPending(ctx, s.opts.BatchSize)
		if err != nil {
			return result, fmt.Errorf("failed to list pending changes: %w", err)
		}
		if len(entries) == 0 {
			break
		}

		acknowledged, err := s.pushBatch(ctx, entries, result)
		if err != nil {
			return result, err
		}
		// Entries the remote neither accepted nor rejected stay pending for
		// the next pass.
		if acknowledged < len(entries) || len(entries) < s.opts.BatchSize {
			break
		}
	}

	now := s.now().UTC()
	if err := s.syncLogRepo.SetLastSyncTime(ctx, now); err != nil {
		return result, fmt.Errorf("failed to store last sync time: %w", err)
	}
	s.mu.Lock()
	s.lastSync = &now
	s.mu.Unlock()

	if s.opts.Retention > 0 {
		purged, err := s.syncLogRepo.CleanupSynced(ctx, now.Add(-s.opts.Retention))
		if err != nil {
			s.logger.WithError(err).Warn("Failed to purge synced outbox entries")
		} else if purged > 0 {
			s.logger.WithField("purged", purged).Debug("Purged synced outbox entries")
		}
	}

	span.SetAttributes(
		attribute.Int("sync.pushed", result.Pushed),
		attribute.Int("sync.accepted", result.Accepted),
		attribute.Int("sync.rejected", result.Rejected),
	)
	return result, nil
}

func (s *SyncService) pushBatch(ctx context.Context, entries []models.SyncLogEntry, result *SyncResult) (int, error) {
	inBatch := make(map[int64]bool, len(entries))
	changes := make([]schemas.SyncChange, 0, len(entries))
	for _, e := range entries {
		inBatch[e.ID] = true
		changes = append(changes, schemas.SyncChange{
			ChangeID:  e.ID,
			TableName: e.TableName,
			RecordID:  e.RecordID,
			UserID:    e.UserID,
			Operation: e.Operation,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		})
	}

	s.mu.Lock()
	clientID := s.clientID
	s.mu.Unlock()

	resp, err := s.remote.Push(ctx, clientID, changes)
	if err != nil {
		return 0, fmt.Errorf("failed to push changes: %w", err)
	}
	result.Pushed += len(changes)

	accepted := make([]int64, 0, len(resp.Accepted))
	for _, id := range resp.Accepted {
		if inBatch[id] {
			accepted = append(accepted, id)
			delete(inBatch, id)
		}
	}
	if err := s.syncLogRepo.MarkSynced(ctx, accepted, s.now().UTC()); err != nil {
		return 0, fmt.Errorf("failed to mark changes synced: %w", err)
	}
	result.Accepted += len(accepted)

	rejected := 0
	for _, r := range resp.Rejected {
		if !inBatch[r.ChangeID] {
			continue
		}
		delete(inBatch, r.ChangeID)
		if err := s.syncLogRepo.MarkFailed(ctx, r.ChangeID, r.Reason); err != nil {
			return 0, fmt.Errorf("failed to mark change %d failed: %w", r.ChangeID, err)
		}
		s.logger.WithFields(logrus.Fields{"changeId": r.ChangeID, "reason": r.Reason}).Warn("Remote rejected change")
		rejected++
	}
	result.Rejected += rejected

	return len(accepted) + rejected, nil
}

// RetryFailed puts failed entries back in the queue for the next pass.
func (s *SyncService) RetryFailed(ctx context.Context) (int64, error) {
	return s.syncLogRepo.RequeueFailed(ctx)
}

func (s *SyncService) GetSyncStats(ctx context.Context) (models.SyncStats, error) {
	return s.syncLogRepo.GetStats(ctx)
}

func (s *SyncService) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *SyncService) IsSyncing() bool {
	return s.Status().IsSyncing
}

func (s *SyncService) LastSyncTime() *time.Time {
	return s.Status().LastSyncTime
}

func (s *SyncService) SyncEnabled() bool {
	return s.Status().SyncEnabled
}

func (s *SyncService) statusLocked() SyncStatus {
	status := SyncStatus{
		ClientID:    s.clientID,
		IsSyncing:   s.syncing,
		SyncEnabled: s.task != nil,
		LastError:   s.lastError,
	}
	if s.lastSync != nil {
		t := *s.lastSync
		status.LastSyncTime = &t
	}
	return status
}

// Subscribe returns a channel receiving the latest status after every
// change. Slow readers only see the most recent status. The returned func
// unsubscribes and closes the channel.
func (s *SyncService) Subscribe() (<-chan SyncStatus, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan SyncStatus, 1)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

func (s *SyncService) publishLocked() {
	status := s.statusLocked()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- status
	}
}
