// Package transport delivers sync items to the backend. The queue treats
// it as opaque: one Send per item, success or failure.
package transport

import (
	"context"

	"offstash/internal/models"
)

// Transport sends one item to the sync target. Implementations must be
// safe for sequential reuse; the queue never calls Send concurrently
// within a drain pass.
type Transport interface {
	Send(ctx context.Context, item *models.SyncItem) error
}
