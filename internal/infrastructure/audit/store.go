package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Outcome classifies one sync run.
type Outcome string

const (
	OutcomeAll     Outcome = "all_succeeded"
	OutcomePartial Outcome = "partially_succeeded"
	OutcomeNone    Outcome = "total_failure"
)

// RowFailure records one spreadsheet row that could not be upserted.
type RowFailure struct {
	RowKey string `json:"row_key"`
	Reason string `json:"reason"`
}

// Report is the durable record of one sync run, so partial failures
// stay auditable instead of being dropped in a log line.
type Report struct {
	ID        string       `json:"id"`
	StartedAt time.Time    `json:"started_at"`
	Succeeded int          `json:"succeeded"`
	Skipped   int          `json:"skipped"`
	Failures  []RowFailure `json:"failures,omitempty"`
	Outcome   Outcome      `json:"outcome"`
	Message   string       `json:"message"`
}

// Store wraps BoltDB to persist sync run reports.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "sync_reports"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Save persists a report under a time-ordered key.
func (s *Store) Save(report Report) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.StartedAt.IsZero() {
		report.StartedAt = time.Now()
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%020d_%s", report.StartedAt.UnixNano(), report.ID)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), payload)
	})
}

// Recent returns up to limit reports, newest first.
func (s *Store) Recent(limit int) ([]Report, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 20
	}

	var reports []Report
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.Last(); k != nil && len(reports) < limit; k, v = c.Prev() {
			var report Report
			if err := json.Unmarshal(v, &report); err != nil {
				continue
			}
			reports = append(reports, report)
		}
		return nil
	})
	return reports, err
}

// Cleanup removes reports older than the provided timestamp.
func (s *Store) Cleanup(olderThan time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var report Report
			if err := json.Unmarshal(v, &report); err != nil {
				continue
			}
			if report.StartedAt.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
