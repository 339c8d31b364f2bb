package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fittrack/src/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrChangeIDReused is returned when a client pushes a different change
	// under an id the remote already stored for it.
	ErrChangeIDReused = errors.New("change id already used for a different change")
)

// Fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", value, err)
	}
	return t, nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// appendSyncLog records a mutation in the outbox. It must run in the same
// transaction as the mutation itself.
func appendSyncLog(ctx context.Context, tx *sql.Tx, table, recordID, userID, operation string, record interface{}, now time.Time) error {
	if !models.SyncedTables[table] {
		return fmt.Errorf("table %q is not synced", table)
	}

	var payload []byte
	if record != nil {
		var err error
		payload, err = json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", table, err)
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO sync_log (table_name, record_id, user_id, operation, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		table, recordID, userID, operation, nullableString(payload), formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to append sync log for %s: %w", table, err)
	}
	return nil
}

func nullableString(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}

