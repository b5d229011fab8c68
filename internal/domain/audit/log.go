// Package audit defines the activity log contract.
// The PostgreSQL-backed implementation lives in infrastructure/storage/postgres.
package audit

import (
	"context"
	"time"

	"medtrack/internal/core/id"
	"medtrack/pkg/logger"
)

// Action is the type of audited operation.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionPost   Action = "POST"
	ActionUnpost Action = "UNPOST"
	ActionVerify Action = "VERIFY"
	ActionExport Action = "EXPORT"
)

// Entry represents a single activity log record.
type Entry struct {
	ID          id.ID          `db:"id" json:"id"`
	Action      Action         `db:"action" json:"action"`
	TableName   string         `db:"table_name" json:"tableName"`
	RecordID    id.ID          `db:"record_id" json:"recordId"`
	Description string         `db:"description" json:"description"`
	User        string         `db:"user_name" json:"user,omitempty"`
	OldValues   map[string]any `db:"-" json:"oldValues,omitempty"`
	NewValues   map[string]any `db:"-" json:"newValues,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

// Recorder appends entries to the activity log.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Reader queries the activity log.
type Reader interface {
	// History returns entries for one record, newest first.
	History(ctx context.Context, tableName string, recordID id.ID, limit int) ([]Entry, error)

	// Recent returns the latest entries across all tables.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Log records an entry and swallows failures with a warning.
// Stock movements and document operations must not fail because the
// activity log is unavailable.
func Log(ctx context.Context, recorder Recorder, entry Entry) {
	if recorder == nil {
		return
	}
	if err := recorder.Record(ctx, entry); err != nil {
		logger.Warn(ctx, "activity log write failed",
			"action", entry.Action,
			"table", entry.TableName,
			"record_id", entry.RecordID,
			"error", err,
		)
	}
}
