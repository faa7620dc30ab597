package models

import "time"

// Mutation is one write issued through the storage router.
type Mutation struct {
	AccountID string `json:"account_id"`
	StoreID   string `json:"store_id,omitempty"`
	TableName string `json:"table_name"`
	RecordID  string `json:"record_id"`
	Record    Record `json:"record,omitempty"`
	// IdempotencyKey deduplicates retried writes per account.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// Query selects rows of one table scoped to an account.
type Query struct {
	AccountID string     `json:"account_id"`
	StoreID   string     `json:"store_id,omitempty"`
	TableName string     `json:"table_name"`
	Since     *time.Time `json:"since,omitempty"`
	Limit     int        `json:"limit,omitempty"`
}

// PullRequest asks for a one-directional refresh of reference tables.
type PullRequest struct {
	AccountID string     `json:"account_id"`
	StoreID   string     `json:"store_id,omitempty"`
	Tables    []string   `json:"tables,omitempty"`
	Since     *time.Time `json:"since,omitempty"`
}

// PullResult reports which tables were refreshed and how many rows each.
type PullResult struct {
	TablesSynced []string          `json:"tables_synced"`
	RecordsCount map[string]int    `json:"records_count"`
	Errors       map[string]string `json:"errors,omitempty"`
}
