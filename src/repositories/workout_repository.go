package repositories

import (
	"context"
	"database/sql"
	"time"

	"fittrack/src/models"
)

type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	ListByDate(ctx context.Context, userID, date string) ([]models.Workout, error)
}

type workoutRepo struct {
	DB *sql.DB
}

func NewWorkoutRepository(db *sql.DB) WorkoutRepository {
	return &workoutRepo{DB: db}
}

func (r *workoutRepo) Create(ctx context.Context, workout *models.Workout) error {
	now := time.Now().UTC()
	workout.CreatedAt = now

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO workouts (id, user_id, date, workout_type, duration_minutes, calories_burned, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			workout.ID, workout.UserID, workout.Date, workout.Type, workout.DurationMinutes,
			workout.CaloriesBurned, formatTime(now))
		if err != nil {
			return err
		}
		return appendSyncLog(ctx, tx, workout.TableName(), workout.ID, workout.UserID, models.OperationInsert, workout, now)
	})
}

func (r *workoutRepo) ListByDate(ctx context.Context, userID, date string) ([]models.Workout, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, date, workout_type, duration_minutes, calories_burned, created_at
		FROM workouts
		WHERE user_id = ? AND date = ?
		ORDER BY created_at ASC`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		var (
			w         models.Workout
			createdAt string
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Type, &w.DurationMinutes, &w.CaloriesBurned, &createdAt); err != nil {
			return nil, err
		}
		if w.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
