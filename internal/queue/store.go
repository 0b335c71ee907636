// Package queue provides the durable offline complaint store. Records live
// in SQLite so they survive restarts; a record leaves the store only after
// the server has acknowledged the complaint.
package queue

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/complainthub/client-go/internal/db"
	"github.com/complainthub/client-go/internal/errors"
	"github.com/complainthub/client-go/internal/logging"
	"github.com/complainthub/client-go/internal/models"
)

// Store persists queued complaints.
type Store struct {
	db *db.DB
}

// NewStore creates a Store over an opened, migrated database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// newLocalID generates a collision-resistant local identifier: a millisecond
// timestamp plus a random suffix, unique across restarts and across rapid
// successive enqueues.
func newLocalID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("offline-%d-%s", time.Now().UnixMilli(), suffix)
}

// Enqueue persists a new pending record and returns it. A storage failure is
// fatal for the attempt and propagates to the caller; it is never swallowed,
// because losing a complaint without telling the user is unacceptable.
func (s *Store) Enqueue(fields models.Fields) (*models.QueuedComplaint, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "failed to encode complaint fields", err)
	}

	record := &models.QueuedComplaint{
		LocalID:    newLocalID(),
		Fields:     fields.Clone(),
		SyncStatus: models.SyncStatusPending,
		QueuedAt:   time.Now().UnixMilli(),
	}

	_, err = s.db.Exec(
		"INSERT INTO offline_complaints (local_id, fields, sync_status, queued_at) VALUES (?, ?, ?, ?)",
		record.LocalID, string(payload), record.SyncStatus, record.QueuedAt,
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "failed to persist queued complaint", err)
	}

	logging.Info("Complaint queued offline", logging.Fields{"local_id": record.LocalID})

	return record, nil
}

// ListAll returns every queued record in insertion order. queued_at only has
// millisecond resolution, so rowid is the order of record, not the timestamp.
func (s *Store) ListAll() ([]models.QueuedComplaint, error) {
	rows, err := s.db.Query(
		"SELECT local_id, fields, sync_status, queued_at FROM offline_complaints ORDER BY rowid ASC",
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "failed to list queued complaints", err)
	}
	defer rows.Close()

	var records []models.QueuedComplaint
	for rows.Next() {
		var (
			record  models.QueuedComplaint
			payload string
		)
		if err := rows.Scan(&record.LocalID, &payload, &record.SyncStatus, &record.QueuedAt); err != nil {
			return nil, errors.Wrap(errors.ErrStorage, "failed to scan queued complaint", err)
		}
		if err := json.Unmarshal([]byte(payload), &record.Fields); err != nil {
			return nil, errors.Wrap(errors.ErrStorage,
				fmt.Sprintf("corrupt fields payload for %s", record.LocalID), err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "failed to iterate queued complaints", err)
	}

	return records, nil
}

// RemoveByLocalID deletes exactly the matching record. Removing an absent
// record is a no-op, not an error, so removal retries are idempotent.
func (s *Store) RemoveByLocalID(localID string) error {
	_, err := s.db.Exec("DELETE FROM offline_complaints WHERE local_id = ?", localID)
	if err != nil {
		return errors.Wrap(errors.ErrStorage,
			fmt.Sprintf("failed to remove queued complaint %s", localID), err)
	}
	return nil
}

// ClearAll removes every record. Callers must have independently verified
// that all records are safe to discard.
func (s *Store) ClearAll() error {
	_, err := s.db.Exec("DELETE FROM offline_complaints")
	if err != nil {
		return errors.Wrap(errors.ErrStorage, "failed to clear queued complaints", err)
	}
	logging.Info("Offline queue cleared", nil)
	return nil
}

// MarkSyncing transitions a record to syncing for the duration of an
// in-flight reconciliation attempt.
func (s *Store) MarkSyncing(localID string) error {
	return s.setStatus(localID, models.SyncStatusSyncing)
}

// MarkPending reverts a record to pending after a failed attempt so the next
// sync cycle retries it.
func (s *Store) MarkPending(localID string) error {
	return s.setStatus(localID, models.SyncStatusPending)
}

func (s *Store) setStatus(localID, status string) error {
	res, err := s.db.Exec(
		"UPDATE offline_complaints SET sync_status = ? WHERE local_id = ?",
		status, localID,
	)
	if err != nil {
		return errors.Wrap(errors.ErrStorage,
			fmt.Sprintf("failed to mark complaint %s as %s", localID, status), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrStorage, "failed to read affected rows", err)
	}
	if affected == 0 {
		return errors.New(errors.ErrNotFound,
			fmt.Sprintf("queued complaint %s not found", localID))
	}
	return nil
}

// Count returns the number of queued records.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM offline_complaints").Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, errors.Wrap(errors.ErrStorage, "failed to count queued complaints", err)
	}
	return count, nil
}
