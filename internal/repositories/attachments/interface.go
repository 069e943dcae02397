// Package attachments persists AttachmentRecords in partitioned durable
// storage. The repository is codec-agnostic: payloads go in and out as
// opaque bytes.
package attachments

import (
	"context"

	"offstash/internal/models"
)

// Repository describes the durable operations on attachment records.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// Insert stores a new record. It fails with common.ErrDuplicateID if
	// the id already exists in that partition; the existing record is
	// left unchanged.
	Insert(ctx context.Context, partition models.Partition, rec *models.AttachmentRecord) error

	// GetByID returns the record or common.ErrNotFound.
	GetByID(ctx context.Context, partition models.Partition, id string) (*models.AttachmentRecord, error)

	// GetAll returns every record in the partition, newest first. The
	// result is computed fresh on each call.
	GetAll(ctx context.Context, partition models.Partition) ([]models.AttachmentRecord, error)

	// DeleteByID removes the record; common.ErrNotFound when absent.
	DeleteByID(ctx context.Context, partition models.Partition, id string) error

	// Clear removes all records in the partition. Irreversible.
	Clear(ctx context.Context, partition models.Partition) error
}
