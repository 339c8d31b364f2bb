package repositories

import (
	"context"
	"database/sql"
	"time"

	"fittrack/src/models"
)

type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	ListByDate(ctx context.Context, userID, date string) ([]models.Meal, error)
	Delete(ctx context.Context, userID, mealID string) error
}

type mealRepo struct {
	DB *sql.DB
}

func NewMealRepository(db *sql.DB) MealRepository {
	return &mealRepo{DB: db}
}

// Create stores the meal and its items; ids must already be assigned.
func (r *mealRepo) Create(ctx context.Context, meal *models.Meal) error {
	now := time.Now().UTC()
	meal.CreatedAt = now

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO meals (id, user_id, date, meal_type, name, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			meal.ID, meal.UserID, meal.Date, meal.Type, meal.Name, formatTime(now))
		if err != nil {
			return err
		}

		header := *meal
		header.Items = nil
		if err := appendSyncLog(ctx, tx, meal.TableName(), meal.ID, meal.UserID, models.OperationInsert, header, now); err != nil {
			return err
		}

		for i := range meal.Items {
			item := &meal.Items[i]
			item.MealID = meal.ID
			item.UserID = meal.UserID
			_, err := tx.ExecContext(ctx, `
				INSERT INTO meal_items (id, meal_id, user_id, name, quantity, unit, calories, protein, carbs, fat)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				item.ID, item.MealID, item.UserID, item.Name, item.Quantity, item.Unit,
				item.Calories, item.Protein, item.Carbs, item.Fat)
			if err != nil {
				return err
			}
			if err := appendSyncLog(ctx, tx, item.TableName(), item.ID, item.UserID, models.OperationInsert, item, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *mealRepo) ListByDate(ctx context.Context, userID, date string) ([]models.Meal, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, date, meal_type, name, created_at
		FROM meals
		WHERE user_id = ? AND date = ?
		ORDER BY created_at ASC`, userID, date)
	if err != nil {
		return nil, err
	}

	meals := []models.Meal{}
	index := map[string]int{}
	for rows.Next() {
		var (
			meal      models.Meal
			createdAt string
		)
		if err := rows.Scan(&meal.ID, &meal.UserID, &meal.Date, &meal.Type, &meal.Name, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		if meal.CreatedAt, err = parseTime(createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		meal.Items = []models.MealItem{}
		index[meal.ID] = len(meals)
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(meals) == 0 {
		return meals, nil
	}

	itemRows, err := r.DB.QueryContext(ctx, `
		SELECT i.id, i.meal_id, i.user_id, i.name, i.quantity, i.unit, i.calories, i.protein, i.carbs, i.fat
		FROM meal_items i
		JOIN meals m ON m.id = i.meal_id
		WHERE m.user_id = ? AND m.date = ?
		ORDER BY i.rowid ASC`, userID, date)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.MealItem
		if err := itemRows.Scan(&item.ID, &item.MealID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
			&item.Calories, &item.Protein, &item.Carbs, &item.Fat); err != nil {
			return nil, err
		}
		if i, ok := index[item.MealID]; ok {
			meals[i].Items = append(meals[i].Items, item)
		}
	}
	return meals, itemRows.Err()
}

// Delete removes a meal and its items, logging one delete per row.
func (r *mealRepo) Delete(ctx context.Context, userID, mealID string) error {
	now := time.Now().UTC()

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT id FROM meal_items WHERE meal_id = ? AND user_id = ?`, mealID, userID)
		if err != nil {
			return err
		}
		var itemIDs []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			itemIDs = append(itemIDs, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM meals WHERE id = ? AND user_id = ?`, mealID, userID)
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

		for _, id := range itemIDs {
			if err := appendSyncLog(ctx, tx, models.MealItem{}.TableName(), id, userID, models.OperationDelete, nil, now); err != nil {
				return err
			}
		}
		return appendSyncLog(ctx, tx, models.Meal{}.TableName(), mealID, userID, models.OperationDelete, nil, now)
	})
}
