package models

import "time"

// SyncStatus values for a queued complaint. A failed reconciliation attempt
// reverts the record to pending so the next sync cycle retries it; there is
// no terminal failure state.
const (
	SyncStatusPending = "pending"
	SyncStatusSyncing = "syncing"
)

// QueuedComplaint is a complaint submission persisted locally while awaiting
// server acknowledgment.
type QueuedComplaint struct {
	LocalID    string `db:"local_id" json:"localId"`
	Fields     Fields `db:"fields" json:"fields"`
	SyncStatus string `db:"sync_status" json:"syncStatus"`
	QueuedAt   int64  `db:"queued_at" json:"queuedAt"`
}

// TableName returns the table name for QueuedComplaint.
func (QueuedComplaint) TableName() string {
	return "offline_complaints"
}

// QueuedTime returns QueuedAt as time.Time.
func (q *QueuedComplaint) QueuedTime() time.Time {
	return time.UnixMilli(q.QueuedAt)
}
