package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"fittrack/src/models"
)

const (
	lastSyncKey = "last_sync_time"
	clientIDKey = "client_id"
)

// SyncLogRepository is the local outbox of pending mutations.
type SyncLogRepository interface {
	ListPending(ctx context.Context, limit int) ([]models.SyncLogEntry, error)
	MarkSynced(ctx context.Context, ids []int64, syncedAt time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string) error
	RequeueFailed(ctx context.Context) (int64, error)
	GetStats(ctx context.Context) (models.SyncStats, error)
	GetLastSyncTime(ctx context.Context) (*time.Time, error)
	SetLastSyncTime(ctx context.Context, t time.Time) error
	GetOrCreateClientID(ctx context.Context, candidate string) (string, error)
	CleanupSynced(ctx context.Context, before time.Time) (int64, error)
}

type syncLogRepo struct {
	DB *sql.DB
}

func NewSyncLogRepository(db *sql.DB) SyncLogRepository {
	return &syncLogRepo{DB: db}
}

// ListPending returns unsynced, non-failed entries oldest first.
func (r *syncLogRepo) ListPending(ctx context.Context, limit int) ([]models.SyncLogEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, table_name, record_id, user_id, operation, payload, synced, failed, attempts, last_error, created_at, synced_at
		FROM sync_log
		WHERE synced = 0 AND failed = 0
		ORDER BY id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.SyncLogEntry
	for rows.Next() {
		entry, err := scanSyncLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanSyncLogEntry(rows *sql.Rows) (models.SyncLogEntry, error) {
	var (
		entry     models.SyncLogEntry
		payload   sql.NullString
		createdAt string
		syncedAt  sql.NullString
	)
	err := rows.Scan(&entry.ID, &entry.TableName, &entry.RecordID, &entry.UserID, &entry.Operation,
		&payload, &entry.Synced, &entry.Failed, &entry.Attempts, &entry.LastError, &createdAt, &syncedAt)
	if err != nil {
		return entry, err
	}
	if payload.Valid {
		entry.Payload = []byte(payload.String)
	}
	if entry.CreatedAt, err = parseTime(createdAt); err != nil {
		return entry, err
	}
	if syncedAt.Valid {
		t, err := parseTime(syncedAt.String)
		if err != nil {
			return entry, err
		}
		entry.SyncedAt = &t
	}
	return entry, nil
}

func (r *syncLogRepo) MarkSynced(ctx context.Context, ids []int64, syncedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, formatTime(syncedAt))
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := r.DB.ExecContext(ctx, `
		UPDATE sync_log
		SET synced = 1, failed = 0, last_error = '', attempts = attempts + 1, synced_at = ?
		WHERE id IN (`+placeholders+`)`, args...)
	return err
}

func (r *syncLogRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE sync_log
		SET failed = 1, attempts = attempts + 1, last_error = ?
		WHERE id = ? AND synced = 0`, reason, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RequeueFailed moves failed entries back to pending and returns how many moved.
func (r *syncLogRepo) RequeueFailed(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE sync_log SET failed = 0 WHERE failed = 1 AND synced = 0`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *syncLogRepo) GetStats(ctx context.Context) (models.SyncStats, error) {
	var stats models.SyncStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN synced = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN synced = 0 AND failed = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN synced = 0 AND failed = 1 THEN 1 ELSE 0 END), 0)
		FROM sync_log`).Scan(&stats.Total, &stats.Synced, &stats.Unsynced, &stats.Failed)
	return stats, err
}

func (r *syncLogRepo) GetLastSyncTime(ctx context.Context) (*time.Time, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM sync_state WHERE key = ?`, lastSyncKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t, err := parseTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *syncLogRepo) SetLastSyncTime(ctx context.Context, t time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sync_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, lastSyncKey, formatTime(t))
	return err
}

// GetOrCreateClientID returns the device id stored with this outbox, storing
// candidate first when the store has none. A recreated store gets a new id
// since its change ids start over.
func (r *syncLogRepo) GetOrCreateClientID(ctx context.Context, candidate string) (string, error) {
	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO sync_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO NOTHING`, clientIDKey, candidate); err != nil {
		return "", err
	}
	var clientID string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM sync_state WHERE key = ?`, clientIDKey).Scan(&clientID)
	return clientID, err
}

// CleanupSynced deletes acknowledged entries synced before the given time.
func (r *syncLogRepo) CleanupSynced(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM sync_log
		WHERE synced = 1 AND synced_at < ?`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
