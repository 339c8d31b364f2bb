package repositories_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/src/models"
	"fittrack/src/repositories"
	"fittrack/src/testutil"
)

func TestClientSyncRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	repo := repositories.NewClientSyncRepository(db)
	ctx := context.Background()

	t.Run("returns nil for non-existent client", func(t *testing.T) {
		last, err := repo.GetLastSyncDate(ctx, "non-existent-client")
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("MarkClientForDate truncates to the day", func(t *testing.T) {
		now := time.Date(2024, 3, 5, 17, 45, 0, 0, time.UTC)
		require.NoError(t, repo.MarkClientForDate(ctx, "client-1", now))
		require.NoError(t, repo.MarkClientForDate(ctx, "client-1", now.Add(time.Hour)))

		last, err := repo.GetLastSyncDate(ctx, "client-1")
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.True(t, last.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("GetSyncedDates and CleanupSyncLogs", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.MarkClientForDate(ctx, "client-2", start.AddDate(0, 0, i).Add(9*time.Hour)))
		}

		got, err := repo.GetSyncedDates(ctx, "client-2", start, start.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.Len(t, got, 2)

		deleted, err := repo.CleanupSyncLogs(ctx, "client-2", start, start.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		got, err = repo.GetSyncedDates(ctx, "client-2", start, start.AddDate(0, 0, 5))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Equal(start.AddDate(0, 0, 2)))
	})
}

func TestRemoteChangeRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	repo := repositories.NewRemoteChangeRepository(db)
	ctx := context.Background()

	change := models.RemoteChange{
		ClientID:  "device-1",
		ChangeID:  1,
		TableName: "workouts",
		RecordID:  "w-1",
		UserID:    "u-1",
		Operation: models.OperationInsert,
		Payload:   json.RawMessage(`{"id":"w-1"}`),
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.ApplyChange(ctx, change))
	require.NoError(t, repo.ApplyChange(ctx, change))

	count, err := repo.CountChanges(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	change.ChangeID = 2
	change.Operation = models.OperationDelete
	change.Payload = nil
	require.NoError(t, repo.ApplyChange(ctx, change))

	var deleted bool
	require.NoError(t, db.QueryRow(ctx, `SELECT deleted FROM remote_records WHERE table_name = $1 AND record_id = $2`, "workouts", "w-1").Scan(&deleted))
	assert.True(t, deleted)

	// a recreated device store numbers its changes from 1 again
	reused := change
	reused.ChangeID = 1
	reused.TableName = "meals"
	reused.RecordID = "m-1"
	reused.Operation = models.OperationInsert
	reused.Payload = json.RawMessage(`{"id":"m-1"}`)
	assert.ErrorIs(t, repo.ApplyChange(ctx, reused), repositories.ErrChangeIDReused)

	var records int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM remote_records WHERE table_name = $1`, "meals").Scan(&records))
	assert.Equal(t, 0, records)
}
