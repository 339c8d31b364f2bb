package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/src/models"
)

// RemoteChangeRepository persists pushed changes on the remote side.
type RemoteChangeRepository interface {
	// ApplyChange stores the change and folds it into remote_records.
	// Replaying a (client_id, change_id) pair is a no-op; reusing the pair
	// for a different change fails with ErrChangeIDReused.
	ApplyChange(ctx context.Context, change models.RemoteChange) error
	CountChanges(ctx context.Context, clientID string) (int, error)
}

type remoteChangeRepo struct {
	DB *pgxpool.Pool
}

func NewRemoteChangeRepository(db *pgxpool.Pool) RemoteChangeRepository {
	return &remoteChangeRepo{DB: db}
}

func (r *remoteChangeRepo) ApplyChange(ctx context.Context, change models.RemoteChange) error {
	return pgx.BeginFunc(ctx, r.DB, func(tx pgx.Tx) error {
		var payload interface{}
		if len(change.Payload) > 0 {
			payload = string(change.Payload)
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO sync_changes (client_id, change_id, table_name, record_id, user_id, operation, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)
			ON CONFLICT (client_id, change_id) DO NOTHING`,
			change.ClientID, change.ChangeID, change.TableName, change.RecordID, change.UserID,
			change.Operation, payload, change.CreatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return checkReplay(ctx, tx, change)
		}

		now := time.Now().UTC()
		if change.Operation == models.OperationDelete {
			_, err = tx.Exec(ctx, `
				INSERT INTO remote_records (table_name, record_id, user_id, payload, deleted, updated_at)
				VALUES ($1, $2, $3, NULL, TRUE, $4)
				ON CONFLICT (table_name, record_id) DO UPDATE SET
					deleted = TRUE,
					updated_at = EXCLUDED.updated_at`,
				change.TableName, change.RecordID, change.UserID, now)
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO remote_records (table_name, record_id, user_id, payload, deleted, updated_at)
			VALUES ($1, $2, $3, $4::jsonb, FALSE, $5)
			ON CONFLICT (table_name, record_id) DO UPDATE SET
				user_id = EXCLUDED.user_id,
				payload = EXCLUDED.payload,
				deleted = FALSE,
				updated_at = EXCLUDED.updated_at`,
			change.TableName, change.RecordID, change.UserID, payload, now)
		return err
	})
}

// checkReplay accepts a duplicate push of the stored change and refuses a
// different change under the same id.
func checkReplay(ctx context.Context, tx pgx.Tx, change models.RemoteChange) error {
	var tableName, recordID, operation string
	err := tx.QueryRow(ctx, `
		SELECT table_name, record_id, operation
		FROM sync_changes
		WHERE client_id = $1 AND change_id = $2`, change.ClientID, change.ChangeID).Scan(&tableName, &recordID, &operation)
	if err != nil {
		return err
	}
	if tableName != change.TableName || recordID != change.RecordID || operation != change.Operation {
		return ErrChangeIDReused
	}
	return nil
}

func (r *remoteChangeRepo) CountChanges(ctx context.Context, clientID string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM sync_changes WHERE client_id = $1`, clientID).Scan(&count)
	return count, err
}
