package models

import (
	"encoding/json"
	"time"
)

const (
	OperationInsert = "insert"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// SyncLogEntry is one local mutation waiting in, or acknowledged through,
// the outbox. Synced and Failed are mutually exclusive.
type SyncLogEntry struct {
	ID        int64           `db:"id" json:"id"`
	TableName string          `db:"table_name" json:"tableName"`
	RecordID  string          `db:"record_id" json:"recordId"`
	UserID    string          `db:"user_id" json:"userId"`
	Operation string          `db:"operation" json:"operation"`
	Payload   json.RawMessage `db:"payload" json:"payload,omitempty"`
	Synced    bool            `db:"synced" json:"synced"`
	Failed    bool            `db:"failed" json:"failed"`
	Attempts  int             `db:"attempts" json:"attempts"`
	LastError string          `db:"last_error" json:"lastError,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	SyncedAt  *time.Time      `db:"synced_at" json:"syncedAt,omitempty"`
}

// SyncStats partitions the outbox: Total = Synced + Unsynced + Failed.
type SyncStats struct {
	Total    int `json:"total"`
	Synced   int `json:"synced"`
	Unsynced int `json:"unsynced"`
	Failed   int `json:"failed"`
}

// RemoteChange is a change as stored by the remote store.
type RemoteChange struct {
	ClientID  string          `db:"client_id" json:"clientId"`
	ChangeID  int64           `db:"change_id" json:"changeId"`
	TableName string          `db:"table_name" json:"tableName"`
	RecordID  string          `db:"record_id" json:"recordId"`
	UserID    string          `db:"user_id" json:"userId"`
	Operation string          `db:"operation" json:"operation"`
	Payload   json.RawMessage `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// SyncedTables lists the tables whose mutations flow through the outbox.
var SyncedTables = map[string]bool{
	User{}.TableName():          true,
	HealthProfile{}.TableName(): true,
	Meal{}.TableName():          true,
	MealItem{}.TableName():      true,
	Workout{}.TableName():       true,
	WeightEntry{}.TableName():   true,
	WaterIntake{}.TableName():   true,
	SleepEntry{}.TableName():    true,
	Goal{}.TableName():          true,
}
