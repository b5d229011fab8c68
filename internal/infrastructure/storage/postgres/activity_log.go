// Package postgres provides PostgreSQL infrastructure components.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"medtrack/internal/core/id"
	"medtrack/internal/domain/audit"
)

// CompressionAlgo specifies the compression algorithm used for a row's
// change payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// changePayload is the JSON stored in the changes column.
type changePayload struct {
	Old map[string]any `json:"old,omitempty"`
	New map[string]any `json:"new,omitempty"`
}

// ActivityLogStore persists activity log entries.
// Implements audit.Recorder and audit.Reader. Change payloads above the
// threshold are zstd-compressed before storage.
type ActivityLogStore struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var (
	_ audit.Recorder = (*ActivityLogStore)(nil)
	_ audit.Reader   = (*ActivityLogStore)(nil)
)

// NewActivityLogStore creates an activity log store.
func NewActivityLogStore(txManager *TxManager) (*ActivityLogStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ActivityLogStore{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record appends an entry to the activity log.
func (s *ActivityLogStore) Record(ctx context.Context, entry audit.Entry) error {
	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var (
		changes    []byte
		compressed []byte
		algo       = CompressionNone
	)
	if len(entry.OldValues) > 0 || len(entry.NewValues) > 0 {
		payload, err := json.Marshal(changePayload{Old: entry.OldValues, New: entry.NewValues})
		if err != nil {
			return fmt.Errorf("marshal changes: %w", err)
		}
		if len(payload) > s.compressThreshold {
			compressed = s.encoder.EncodeAll(payload, nil)
			algo = CompressionZstd
		} else {
			changes = payload
		}
	}

	sql := `
		INSERT INTO activity_logs (
			id, action, table_name, record_id, description, user_name,
			changes, changes_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		entry.ID, entry.Action, entry.TableName, entry.RecordID,
		entry.Description, entry.User,
		changes, compressed, algo, entry.CreatedAt,
	)
	return err
}

// History returns entries for one record, newest first.
func (s *ActivityLogStore) History(ctx context.Context, tableName string, recordID id.ID, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	sql := `
		SELECT id, action, table_name, record_id, description, user_name,
		       changes, changes_compressed, compression_algo, created_at
		FROM activity_logs
		WHERE table_name = $1 AND record_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	return s.queryEntries(ctx, sql, tableName, recordID, limit)
}

// Recent returns the latest entries across all tables.
func (s *ActivityLogStore) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	sql := `
		SELECT id, action, table_name, record_id, description, user_name,
		       changes, changes_compressed, compression_algo, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	return s.queryEntries(ctx, sql, limit)
}

func (s *ActivityLogStore) queryEntries(ctx context.Context, sql string, args ...any) ([]audit.Entry, error) {
	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity log: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			e          audit.Entry
			changes    []byte
			compressed []byte
			algo       CompressionAlgo
		)
		err := rows.Scan(
			&e.ID, &e.Action, &e.TableName, &e.RecordID, &e.Description,
			&e.User, &changes, &compressed, &algo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if algo == CompressionZstd && len(compressed) > 0 {
			changes, err = s.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress changes: %w", err)
			}
		}
		if len(changes) > 0 {
			var payload changePayload
			if err := json.Unmarshal(changes, &payload); err != nil {
				return nil, fmt.Errorf("unmarshal changes: %w", err)
			}
			e.OldValues = payload.Old
			e.NewValues = payload.New
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Diff calculates field-level changes between old and new entity states.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)

	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = map[string]any{"old": nil, "new": newVal}
		} else if !equal(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}

	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}

func equal(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
