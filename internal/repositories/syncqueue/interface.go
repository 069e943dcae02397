// Package syncqueue persists pending sync items. Items live in the queue
// until delivery is confirmed, then are deleted; they are never
// re-enqueued after removal.
package syncqueue

import (
	"context"

	"offstash/internal/models"
)

// Repository describes the durable sync-queue operations.
type Repository interface {
	// Insert stores a new item with Synced=false. Fails with
	// common.ErrDuplicateID on an existing id.
	Insert(ctx context.Context, item *models.SyncItem) error

	// GetPending returns every unsynced item ordered by timestamp
	// ascending (oldest first), recomputed on each call.
	GetPending(ctx context.Context) ([]models.SyncItem, error)

	// CountPending returns the number of unsynced items.
	CountPending(ctx context.Context) (int, error)

	// MarkSynced flips the synced flag for the given ids. Kept for
	// callers that want an audit step before removal; Drain deletes
	// confirmed items outright.
	MarkSynced(ctx context.Context, ids []string) error

	// DeleteByID removes one item; common.ErrNotFound when absent.
	DeleteByID(ctx context.Context, id string) error
}
