package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"offstash/internal/common"
	"offstash/internal/dbx"
	"offstash/internal/models"
)

// SQLiteRepository implements Repository on a *sql.DB. It holds the full
// handle rather than a DBTX because Insert runs its duplicate check and
// write inside one transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert checks for an existing id and writes the record in a single
// transaction, so a concurrent insert of the same id cannot slip through.
// The primary key constraint backs this up at the schema level.
func (r *SQLiteRepository) Insert(ctx context.Context, partition models.Partition, rec *models.AttachmentRecord) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var n int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM attachments WHERE part=? AND id=?`,
			string(partition), rec.ID).Scan(&n)
		if err != nil {
			return fmt.Errorf("check attachment id: %v: %w", err, common.ErrStorageUnavailable)
		}
		if n > 0 {
			return fmt.Errorf("attachment %s in %s: %w", rec.ID, partition, common.ErrDuplicateID)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO attachments (part, id, name, media_type, original_size, compressed_size, payload, nonce, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(partition), rec.ID, rec.Name, rec.MediaType,
			rec.OriginalSize, rec.CompressedSize, rec.Payload, rec.Nonce,
			rec.CreatedAt.UnixNano())
		if err != nil {
			return fmt.Errorf("insert attachment: %v: %w", err, common.ErrStorageUnavailable)
		}
		return nil
	})
}

// GetByID returns one record from the partition.
func (r *SQLiteRepository) GetByID(ctx context.Context, partition models.Partition, id string) (*models.AttachmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, media_type, original_size, compressed_size, payload, nonce, created_at
		 FROM attachments WHERE part=? AND id=?`,
		string(partition), id)

	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("attachment %s in %s: %w", id, partition, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment: %v: %w", err, common.ErrStorageUnavailable)
	}
	return rec, nil
}

// GetAll lists a partition newest first, ids breaking created_at ties so
// the order is stable.
func (r *SQLiteRepository) GetAll(ctx context.Context, partition models.Partition) ([]models.AttachmentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, media_type, original_size, compressed_size, payload, nonce, created_at
		 FROM attachments WHERE part=? ORDER BY created_at DESC, id DESC`,
		string(partition))
	if err != nil {
		return nil, fmt.Errorf("list attachments: %v: %w", err, common.ErrStorageUnavailable)
	}
	defer rows.Close()

	var result []models.AttachmentRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %v: %w", err, common.ErrStorageUnavailable)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attachments: %v: %w", err, common.ErrStorageUnavailable)
	}
	return result, nil
}

// DeleteByID removes one record. It expects exactly one row affected;
// zero rows means the id was absent.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, partition models.Partition, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM attachments WHERE part=? AND id=?`, string(partition), id)
	if err != nil {
		return fmt.Errorf("delete attachment: %v: %w", err, common.ErrStorageUnavailable)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attachment: %v: %w", err, common.ErrStorageUnavailable)
	}
	if ra == 0 {
		return fmt.Errorf("attachment %s in %s: %w", id, partition, common.ErrNotFound)
	}
	return nil
}

// Clear removes every record in the partition.
func (r *SQLiteRepository) Clear(ctx context.Context, partition models.Partition) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE part=?`, string(partition))
	if err != nil {
		return fmt.Errorf("clear partition %s: %v: %w", partition, err, common.ErrStorageUnavailable)
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (*models.AttachmentRecord, error) {
	rec := &models.AttachmentRecord{}
	var createdAt int64
	err := scan(&rec.ID, &rec.Name, &rec.MediaType,
		&rec.OriginalSize, &rec.CompressedSize, &rec.Payload, &rec.Nonce, &createdAt)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = time.Unix(0, createdAt)
	return rec, nil
}
