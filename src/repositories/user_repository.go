package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/src/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpsertProfile(ctx context.Context, profile *models.HealthProfile) error
	GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error)
}

type userRepo struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepo{DB: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, name, email, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			user.ID, user.Name, user.Email, formatTime(now), formatTime(now))
		if err != nil {
			return err
		}
		return appendSyncLog(ctx, tx, user.TableName(), user.ID, user.ID, models.OperationInsert, user, now)
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var (
		user                 models.User
		createdAt, updatedAt string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE id = ?`, id).Scan(&user.ID, &user.Name, &user.Email, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertProfile creates or replaces the user's health profile.
func (r *userRepo) UpsertProfile(ctx context.Context, profile *models.HealthProfile) error {
	now := time.Now().UTC()
	profile.UpdatedAt = now

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM health_profiles WHERE user_id = ?`, profile.UserID).Scan(&exists)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO health_profiles (user_id, target_calories, height_cm, weight_goal_kg, target_water_ml, target_sleep_hours, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id) DO UPDATE SET
				target_calories = excluded.target_calories,
				height_cm = excluded.height_cm,
				weight_goal_kg = excluded.weight_goal_kg,
				target_water_ml = excluded.target_water_ml,
				target_sleep_hours = excluded.target_sleep_hours,
				updated_at = excluded.updated_at`,
			profile.UserID, profile.TargetCalories, profile.HeightCm, profile.WeightGoalKg,
			profile.TargetWaterMl, profile.TargetSleepHours, formatTime(now))
		if err != nil {
			return err
		}

		op := models.OperationInsert
		if exists > 0 {
			op = models.OperationUpdate
		}
		return appendSyncLog(ctx, tx, profile.TableName(), profile.UserID, profile.UserID, op, profile, now)
	})
}

func (r *userRepo) GetProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	var (
		profile   models.HealthProfile
		updatedAt string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, target_calories, height_cm, weight_goal_kg, target_water_ml, target_sleep_hours, updated_at
		FROM health_profiles
		WHERE user_id = ?`, userID).Scan(&profile.UserID, &profile.TargetCalories, &profile.HeightCm,
		&profile.WeightGoalKg, &profile.TargetWaterMl, &profile.TargetSleepHours, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if profile.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &profile, nil
}
