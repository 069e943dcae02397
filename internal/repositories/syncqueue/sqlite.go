package syncqueue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"offstash/internal/common"
	"offstash/internal/dbx"
	"offstash/internal/models"
)

// SQLiteRepository implements Repository on a *sql.DB.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert stores a new pending item. The duplicate check and write run in
// one transaction, mirroring the attachments repository.
func (r *SQLiteRepository) Insert(ctx context.Context, item *models.SyncItem) error {
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return fmt.Errorf("encode sync item metadata: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var n int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sync_queue WHERE id=?`, item.ID).Scan(&n)
		if err != nil {
			return fmt.Errorf("check sync item id: %v: %w", err, common.ErrStorageUnavailable)
		}
		if n > 0 {
			return fmt.Errorf("sync item %s: %w", item.ID, common.ErrDuplicateID)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO sync_queue (id, kind, file_name, timestamp, payload, synced, metadata)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, string(item.Kind), item.FileName,
			item.Timestamp.UnixNano(), item.Payload, boolToInt(item.Synced), metadata)
		if err != nil {
			return fmt.Errorf("insert sync item: %v: %w", err, common.ErrStorageUnavailable)
		}
		return nil
	})
}

// GetPending lists unsynced items oldest first, ids breaking ties.
func (r *SQLiteRepository) GetPending(ctx context.Context) ([]models.SyncItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, file_name, timestamp, payload, synced, metadata
		 FROM sync_queue WHERE synced=0 ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pending sync items: %v: %w", err, common.ErrStorageUnavailable)
	}
	defer rows.Close()

	var result []models.SyncItem
	for rows.Next() {
		var item models.SyncItem
		var kind string
		var timestamp int64
		var synced int
		var metadata sql.NullString
		if err := rows.Scan(&item.ID, &kind, &item.FileName, &timestamp, &item.Payload, &synced, &metadata); err != nil {
			return nil, fmt.Errorf("scan sync item: %v: %w", err, common.ErrStorageUnavailable)
		}
		item.Kind = models.SyncItemKind(kind)
		item.Timestamp = time.Unix(0, timestamp)
		item.Synced = synced != 0
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &item.Metadata); err != nil {
				return nil, fmt.Errorf("decode sync item metadata: %w", err)
			}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending sync items: %v: %w", err, common.ErrStorageUnavailable)
	}
	return result, nil
}

// CountPending returns how many items are still unsynced.
func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_queue WHERE synced=0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending sync items: %v: %w", err, common.ErrStorageUnavailable)
	}
	return n, nil
}

// MarkSynced flips the synced flag for the given ids.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE sync_queue SET synced=1 WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("mark sync items synced: %v: %w", err, common.ErrStorageUnavailable)
	}
	return nil
}

// DeleteByID removes one item, reporting NotFound when nothing matched.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete sync item: %v: %w", err, common.ErrStorageUnavailable)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sync item: %v: %w", err, common.ErrStorageUnavailable)
	}
	if ra == 0 {
		return fmt.Errorf("sync item %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func marshalMetadata(m map[string]string) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
