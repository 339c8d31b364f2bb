package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/src/clients/syncremote"
	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/schemas"
	"fittrack/src/services"
	"fittrack/src/testutil"
)

type fakeRemote struct {
	mu       sync.Mutex
	pushes   [][]schemas.SyncChange
	reject   map[string]string
	err      error
	block    chan struct{}
	entered  chan struct{}
	ignoreID map[int64]bool
}

func (f *fakeRemote) Push(ctx context.Context, clientID string, changes []schemas.SyncChange) (*schemas.SyncPushResponse, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.pushes = append(f.pushes, changes)

	resp := &schemas.SyncPushResponse{}
	for _, c := range changes {
		if f.ignoreID[c.ChangeID] {
			continue
		}
		if reason, ok := f.reject[c.TableName]; ok {
			resp.Rejected = append(resp.Rejected, schemas.SyncPushRejection{ChangeID: c.ChangeID, Reason: reason})
			continue
		}
		resp.Accepted = append(resp.Accepted, c.ChangeID)
	}
	return resp, nil
}

func (f *fakeRemote) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

type syncFixture struct {
	users    repositories.UserRepository
	workouts repositories.WorkoutRepository
	goals    repositories.GoalRepository
	logs     repositories.SyncLogRepository
	user     *models.User
}

func newSyncFixture(t *testing.T) *syncFixture {
	db := testutil.SetupLocalDB(t)
	f := &syncFixture{
		users:    repositories.NewUserRepository(db),
		workouts: repositories.NewWorkoutRepository(db),
		goals:    repositories.NewGoalRepository(db),
		logs:     repositories.NewSyncLogRepository(db),
	}
	f.user = &models.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, f.users.Create(context.Background(), f.user))
	return f
}

func (f *syncFixture) addWorkouts(t *testing.T, n int) {
	for i := 0; i < n; i++ {
		require.NoError(t, f.workouts.Create(context.Background(), &models.Workout{
			ID: uuid.NewString(), UserID: f.user.ID, Date: "2024-03-05", Type: "run", CaloriesBurned: 100,
		}))
	}
}

func newService(f *syncFixture, remote *fakeRemote, batch int) *services.SyncService {
	var r syncremote.SyncRemoteClientI
	if remote != nil {
		r = remote
	}
	return services.NewSyncService(f.logs, r, services.SyncOptions{
		ClientID:  "device-1",
		Interval:  time.Second,
		BatchSize: batch,
	}, logrus.New())
}

func TestSyncNow(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes every pending entry in batches", func(t *testing.T) {
		f := newSyncFixture(t)
		f.addWorkouts(t, 4)
		remote := &fakeRemote{}
		svc := newService(f, remote, 2)
		require.NoError(t, svc.Initialize(ctx))
		assert.Nil(t, svc.LastSyncTime())

		result, err := svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, &services.SyncResult{Pushed: 5, Accepted: 5}, result)
		assert.Equal(t, 3, remote.pushCount())
		assert.Equal(t, "users", remote.pushes[0][0].TableName)
		assert.NotNil(t, svc.LastSyncTime())

		stats, err := svc.GetSyncStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.SyncStats{Total: 5, Synced: 5}, stats)

		again, err := svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, again.Pushed)
	})

	t.Run("rejected entries are marked failed until retried", func(t *testing.T) {
		f := newSyncFixture(t)
		f.addWorkouts(t, 2)
		remote := &fakeRemote{reject: map[string]string{"workouts": "schema mismatch"}}
		svc := newService(f, remote, 10)

		result, err := svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Accepted)
		assert.Equal(t, 2, result.Rejected)

		stats, err := svc.GetSyncStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.SyncStats{Total: 3, Synced: 1, Unsynced: 0, Failed: 2}, stats)

		remote.mu.Lock()
		remote.reject = nil
		remote.mu.Unlock()

		result, err = svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Pushed)

		n, err := svc.RetryFailed(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		result, err = svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Accepted)

		stats, err = svc.GetSyncStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.SyncStats{Total: 3, Synced: 3}, stats)
	})

	t.Run("transport error leaves entries pending", func(t *testing.T) {
		f := newSyncFixture(t)
		f.addWorkouts(t, 1)
		svc := newService(f, &fakeRemote{err: errors.New("connection refused")}, 10)

		_, err := svc.SyncNow(ctx)
		require.Error(t, err)
		assert.Contains(t, svc.Status().LastError, "connection refused")
		assert.Nil(t, svc.LastSyncTime())

		stats, err := svc.GetSyncStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.SyncStats{Total: 2, Unsynced: 2}, stats)
	})

	t.Run("unacknowledged entries stay pending without looping", func(t *testing.T) {
		f := newSyncFixture(t)
		f.addWorkouts(t, 1)
		remote := &fakeRemote{ignoreID: map[int64]bool{2: true}}
		svc := newService(f, remote, 1)

		result, err := svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Accepted)
		assert.Equal(t, 2, remote.pushCount())

		stats, err := svc.GetSyncStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Unsynced)
	})

	t.Run("no remote configured", func(t *testing.T) {
		f := newSyncFixture(t)
		svc := newService(f, nil, 10)

		_, err := svc.SyncNow(ctx)
		assert.ErrorIs(t, err, services.ErrRemoteNotConfigured)
		assert.False(t, svc.IsSyncing())
	})
}

func TestSyncNowIsNotConcurrent(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)
	remote := &fakeRemote{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	svc := newService(f, remote, 10)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SyncNow(ctx)
		done <- err
	}()

	<-remote.entered
	assert.True(t, svc.IsSyncing())

	_, err := svc.SyncNow(ctx)
	assert.ErrorIs(t, err, services.ErrSyncInProgress)

	close(remote.block)
	require.NoError(t, <-done)
	assert.False(t, svc.IsSyncing())
}

func TestBackgroundSync(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)
	remote := &fakeRemote{}
	svc := newService(f, remote, 10)
	require.NoError(t, svc.Initialize(ctx))
	require.NoError(t, svc.Initialize(ctx))

	assert.False(t, svc.SyncEnabled())
	require.NoError(t, svc.StartBackgroundSync())
	require.NoError(t, svc.StartBackgroundSync())
	assert.True(t, svc.SyncEnabled())

	assert.Eventually(t, func() bool {
		stats, err := svc.GetSyncStats(ctx)
		return err == nil && stats.Synced == 1
	}, 5*time.Second, 50*time.Millisecond)

	svc.StopBackgroundSync()
	svc.StopBackgroundSync()
	assert.False(t, svc.SyncEnabled())
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)
	svc := newService(f, &fakeRemote{}, 10)

	updates, unsubscribe := svc.Subscribe()

	_, err := svc.SyncNow(ctx)
	require.NoError(t, err)

	select {
	case status := <-updates:
		assert.False(t, status.IsSyncing)
		assert.NotNil(t, status.LastSyncTime)
	case <-time.After(time.Second):
		t.Fatal("no status update received")
	}

	unsubscribe()
	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
}

// remoteStore hands pushes straight to a RemoteSyncService.
type remoteStore struct {
	svc *services.RemoteSyncService
}

func (r remoteStore) Push(ctx context.Context, clientID string, changes []schemas.SyncChange) (*schemas.SyncPushResponse, error) {
	return r.svc.ApplyPush(ctx, schemas.SyncPushRequest{ClientID: clientID, Changes: changes})
}

func TestClientIdentity(t *testing.T) {
	ctx := context.Background()
	opts := services.SyncOptions{Interval: time.Second}

	t.Run("recreated store pushes under a new id", func(t *testing.T) {
		changes := &fakeChangeRepo{applied: map[string]string{}}
		remote := remoteStore{svc: services.NewRemoteSyncService(changes, &fakeClientSyncRepo{}, logrus.New())}

		first := newSyncFixture(t)
		first.addWorkouts(t, 1)
		svc := services.NewSyncService(first.logs, remote, opts, logrus.New())
		result, err := svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, &services.SyncResult{Pushed: 2, Accepted: 2}, result)
		firstID := svc.Status().ClientID
		require.NotEmpty(t, firstID)

		restarted := services.NewSyncService(first.logs, remote, opts, logrus.New())
		require.NoError(t, restarted.Initialize(ctx))
		assert.Equal(t, firstID, restarted.Status().ClientID)

		second := newSyncFixture(t)
		second.addWorkouts(t, 1)
		recreated := services.NewSyncService(second.logs, remote, opts, logrus.New())
		result, err = recreated.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, &services.SyncResult{Pushed: 2, Accepted: 2}, result)
		assert.NotEqual(t, firstID, recreated.Status().ClientID)
		assert.Len(t, changes.order, 4)
	})

	t.Run("configured id colliding with an old store is rejected", func(t *testing.T) {
		changes := &fakeChangeRepo{applied: map[string]string{}}
		remote := remoteStore{svc: services.NewRemoteSyncService(changes, &fakeClientSyncRepo{}, logrus.New())}
		pinned := services.SyncOptions{ClientID: "device-1", Interval: time.Second}

		first := newSyncFixture(t)
		svc := services.NewSyncService(first.logs, remote, pinned, logrus.New())
		_, err := svc.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, "device-1", svc.Status().ClientID)

		second := newSyncFixture(t)
		recreated := services.NewSyncService(second.logs, remote, pinned, logrus.New())
		result, err := recreated.SyncNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, &services.SyncResult{Pushed: 1, Rejected: 1}, result)

		stats, err := recreated.GetSyncStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Failed)
	})
}
