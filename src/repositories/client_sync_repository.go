package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientSyncRepository tracks, per device, the dates on which it pushed
// changes to the remote store.
type ClientSyncRepository interface {
	MarkClientForDate(ctx context.Context, clientID string, syncDate time.Time) error
	GetLastSyncDate(ctx context.Context, clientID string) (*time.Time, error)
	GetSyncedDates(ctx context.Context, clientID string, startDate, endDate time.Time) ([]time.Time, error)
	CleanupSyncLogs(ctx context.Context, clientID string, startDate, endDate time.Time) (int64, error)
}

type clientSyncRepo struct {
	DB *pgxpool.Pool
}

func NewClientSyncRepository(db *pgxpool.Pool) ClientSyncRepository {
	return &clientSyncRepo{DB: db}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *clientSyncRepo) MarkClientForDate(ctx context.Context, clientID string, syncDate time.Time) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO sync_logs (client_id, sync_date)
		VALUES ($1, $2)
		ON CONFLICT (client_id, sync_date) DO NOTHING`, clientID, truncateDay(syncDate))
	return err
}

func (r *clientSyncRepo) GetLastSyncDate(ctx context.Context, clientID string) (*time.Time, error) {
	var syncDate time.Time
	err := r.DB.QueryRow(ctx, `
		SELECT sync_date
		FROM sync_logs
		WHERE client_id = $1
		ORDER BY sync_date DESC
		LIMIT 1`, clientID).Scan(&syncDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &syncDate, nil
}

// GetSyncedDates returns the dates in [startDate, endDate).
func (r *clientSyncRepo) GetSyncedDates(ctx context.Context, clientID string, startDate, endDate time.Time) ([]time.Time, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT sync_date
		FROM sync_logs
		WHERE client_id = $1
		AND sync_date >= $2
		AND sync_date < $3
		ORDER BY sync_date ASC`, clientID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// CleanupSyncLogs deletes the dates in [startDate, endDate] and returns how
// many were removed.
func (r *clientSyncRepo) CleanupSyncLogs(ctx context.Context, clientID string, startDate, endDate time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx, `
		DELETE FROM sync_logs
		WHERE client_id = $1
		AND sync_date >= $2
		AND sync_date <= $3`, clientID, startDate, endDate)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
