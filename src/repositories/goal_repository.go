package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/src/models"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	List(ctx context.Context, userID string) ([]models.Goal, error)
	UpdateStatus(ctx context.Context, userID, goalID, status string) (*models.Goal, error)
}

type goalRepo struct {
	DB *sql.DB
}

func NewGoalRepository(db *sql.DB) GoalRepository {
	return &goalRepo{DB: db}
}

func (r *goalRepo) Create(ctx context.Context, goal *models.Goal) error {
	now := time.Now().UTC()
	goal.CreatedAt = now
	if goal.Status == "" {
		goal.Status = models.GoalStatusActive
	}

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO goals (id, user_id, goal_type, target_value, deadline, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			goal.ID, goal.UserID, goal.Type, goal.TargetValue, goal.Deadline, goal.Status, formatTime(now))
		if err != nil {
			return err
		}
		return appendSyncLog(ctx, tx, goal.TableName(), goal.ID, goal.UserID, models.OperationInsert, goal, now)
	})
}

func (r *goalRepo) List(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, goal_type, target_value, deadline, status, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var (
		goal      models.Goal
		createdAt string
	)
	if err := row.Scan(&goal.ID, &goal.UserID, &goal.Type, &goal.TargetValue, &goal.Deadline, &goal.Status, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if goal.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) UpdateStatus(ctx context.Context, userID, goalID, status string) (*models.Goal, error) {
	now := time.Now().UTC()
	var goal *models.Goal

	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE goals SET status = ? WHERE id = ? AND user_id = ?`, status, goalID, userID)
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

		row := tx.QueryRowContext(ctx, `
			SELECT id, user_id, goal_type, target_value, deadline, status, created_at
			FROM goals
			WHERE id = ?`, goalID)
		goal, err = scanGoal(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return appendSyncLog(ctx, tx, goal.TableName(), goal.ID, goal.UserID, models.OperationUpdate, goal, now)
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}
