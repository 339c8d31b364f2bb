package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"fittrack/src/models"
)

// MetricsRepository stores the scalar samples: weight, water and sleep.
type MetricsRepository interface {
	AddWeight(ctx context.Context, entry *models.WeightEntry) error
	ListWeights(ctx context.Context, userID string, limit int) ([]models.WeightEntry, error)
	SetWater(ctx context.Context, intake *models.WaterIntake) error
	GetWater(ctx context.Context, userID, date string) (*models.WaterIntake, error)
	SetSleep(ctx context.Context, entry *models.SleepEntry) error
	GetSleep(ctx context.Context, userID, date string) (*models.SleepEntry, error)
}

type metricsRepo struct {
	DB *sql.DB
}

func NewMetricsRepository(db *sql.DB) MetricsRepository {
	return &metricsRepo{DB: db}
}

func (r *metricsRepo) AddWeight(ctx context.Context, entry *models.WeightEntry) error {
	now := time.Now().UTC()
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = now
	}

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO weight_entries (id, user_id, weight_kg, recorded_at)
			VALUES (?, ?, ?, ?)`,
			entry.ID, entry.UserID, entry.WeightKg, formatTime(entry.RecordedAt))
		if err != nil {
			return err
		}
		return appendSyncLog(ctx, tx, entry.TableName(), entry.ID, entry.UserID, models.OperationInsert, entry, now)
	})
}

// ListWeights returns the most recent samples first.
func (r *metricsRepo) ListWeights(ctx context.Context, userID string, limit int) ([]models.WeightEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, weight_kg, recorded_at
		FROM weight_entries
		WHERE user_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.WeightEntry{}
	for rows.Next() {
		var (
			e          models.WeightEntry
			recordedAt string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.WeightKg, &recordedAt); err != nil {
			return nil, err
		}
		if e.RecordedAt, err = parseTime(recordedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SetWater replaces the water total for the intake's date.
func (r *metricsRepo) SetWater(ctx context.Context, intake *models.WaterIntake) error {
	now := time.Now().UTC()
	intake.UpdatedAt = now

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		op, err := resolveDailyID(ctx, tx, "water_intake", intake.UserID, intake.Date, &intake.ID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO water_intake (id, user_id, date, amount_ml, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id, date) DO UPDATE SET
				amount_ml = excluded.amount_ml,
				updated_at = excluded.updated_at`,
			intake.ID, intake.UserID, intake.Date, intake.AmountMl, formatTime(now))
		if err != nil {
			return err
		}
		return appendSyncLog(ctx, tx, intake.TableName(), intake.ID, intake.UserID, op, intake, now)
	})
}

func (r *metricsRepo) GetWater(ctx context.Context, userID, date string) (*models.WaterIntake, error) {
	var (
		intake    models.WaterIntake
		updatedAt string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, date, amount_ml, updated_at
		FROM water_intake
		WHERE user_id = ? AND date = ?`, userID, date).
		Scan(&intake.ID, &intake.UserID, &intake.Date, &intake.AmountMl, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if intake.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &intake, nil
}

// SetSleep replaces the sleep entry for the entry's date.
func (r *metricsRepo) SetSleep(ctx context.Context, entry *models.SleepEntry) error {
	now := time.Now().UTC()
	entry.UpdatedAt = now

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		op, err := resolveDailyID(ctx, tx, "sleep_entries", entry.UserID, entry.Date, &entry.ID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sleep_entries (id, user_id, date, hours, quality, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id, date) DO UPDATE SET
				hours = excluded.hours,
				quality = excluded.quality,
				updated_at = excluded.updated_at`,
			entry.ID, entry.UserID, entry.Date, entry.Hours, entry.Quality, formatTime(now))
		if err != nil {
			return err
		}
		return appendSyncLog(ctx, tx, entry.TableName(), entry.ID, entry.UserID, op, entry, now)
	})
}

func (r *metricsRepo) GetSleep(ctx context.Context, userID, date string) (*models.SleepEntry, error) {
	var (
		entry     models.SleepEntry
		updatedAt string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, date, hours, quality, updated_at
		FROM sleep_entries
		WHERE user_id = ? AND date = ?`, userID, date).
		Scan(&entry.ID, &entry.UserID, &entry.Date, &entry.Hours, &entry.Quality, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entry.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &entry, nil
}

// resolveDailyID keeps the record id stable across rewrites of a per-date
// sample and reports whether the write is an insert or an update.
func resolveDailyID(ctx context.Context, tx *sql.Tx, table, userID, date string, id *string) (string, error) {
	var existing string
	err := tx.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE user_id = ? AND date = ?`, userID, date).Scan(&existing)
	switch {
	case err == nil:
		*id = existing
		return models.OperationUpdate, nil
	case errors.Is(err, sql.ErrNoRows):
		if *id == "" {
			*id = uuid.NewString()
		}
		return models.OperationInsert, nil
	default:
		return "", err
	}
}
