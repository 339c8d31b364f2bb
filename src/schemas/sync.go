package schemas

import (
	"encoding/json"
	"time"
)

// SyncChange is one outbox entry on the wire.
type SyncChange struct {
	ChangeID  int64           `json:"changeId"`
	TableName string          `json:"tableName"`
	RecordID  string          `json:"recordId"`
	UserID    string          `json:"userId"`
	Operation string          `json:"operation"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type SyncPushRequest struct {
	ClientID string       `json:"clientId"`
	Changes  []SyncChange `json:"changes"`
}

type SyncPushRejection struct {
	ChangeID int64  `json:"changeId"`
	Reason   string `json:"reason"`
}

type SyncPushResponse struct {
	Accepted []int64             `json:"accepted"`
	Rejected []SyncPushRejection `json:"rejected"`
}

type SyncStatusResponse struct {
	ClientID     string     `json:"clientId,omitempty"`
	IsSyncing    bool       `json:"isSyncing"`
	SyncEnabled  bool       `json:"syncEnabled"`
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
}

type SyncResultResponse struct {
	Pushed   int `json:"pushed"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

type ClientSyncResponse struct {
	ClientID     string   `json:"clientId"`
	LastSyncDate string   `json:"lastSyncDate,omitempty"`
	SyncedDates  []string `json:"syncedDates,omitempty"`
}

type SyncLogCleanupResponse struct {
	ClientID string `json:"clientId"`
	Deleted  int64  `json:"deleted"`
}
