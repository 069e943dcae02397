// Package syncer implements the connectivity-aware sync queue: durable
// pending items, drained to a transport exactly once each, oldest first.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"offstash/internal/logging"
	"offstash/internal/models"
	"offstash/internal/netwatch"
	"offstash/internal/repositories/syncqueue"
	"offstash/internal/services"
	"offstash/internal/transport"
)

// DrainReport describes one drain pass. A transport failure halts the
// pass and is reported here rather than returned as an error; only a
// storage fault fails the Drain call itself.
type DrainReport struct {
	// Processed counts items delivered and removed in this pass.
	Processed int

	// FailedID is the item that halted the pass, empty on a full drain.
	FailedID string

	// Reason is the transport failure behind FailedID.
	Reason error

	// Skipped is true when another drain was already in flight and this
	// call returned without doing anything.
	Skipped bool
}

// Queue is the sync queue service. Delivery is at-least-once: the
// transport may see an item again after a failure later in the pass, but
// an item is removed from durable storage only once, after its delivery
// is confirmed.
type Queue struct {
	repo      syncqueue.Repository
	transport transport.Transport
	observer  *netwatch.Observer
	notifier  *services.Notifier
	log       logging.Logger

	// single-flight guard for Drain
	drainMu sync.Mutex
}

// NewQueue wires the queue to its observer: every Offline -> Online
// transition triggers a drain in a fresh goroutine, so observer event
// delivery is never blocked.
func NewQueue(repo syncqueue.Repository, tr transport.Transport, observer *netwatch.Observer, notifier *services.Notifier, log logging.Logger) *Queue {
	q := &Queue{
		repo:      repo,
		transport: tr,
		observer:  observer,
		notifier:  notifier,
		log:       log,
	}

	observer.Subscribe(netwatch.EventOnline, func() {
		go func() {
			if _, err := q.Drain(context.Background()); err != nil {
				q.log.Error(context.Background(), "automatic drain failed", "error", err)
			}
		}()
	})

	return q
}

// Enqueue durably stores a new pending item and returns immediately; no
// delivery is attempted here.
func (q *Queue) Enqueue(ctx context.Context, kind models.SyncItemKind, fileName string, payload []byte, metadata map[string]string) (*models.SyncItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown sync item kind %q", kind)
	}

	item := &models.SyncItem{
		ID:        uuid.NewString(),
		Kind:      kind,
		FileName:  fileName,
		Timestamp: time.Now(),
		Payload:   payload,
		Synced:    false,
		Metadata:  metadata,
	}

	if err := q.repo.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("enqueue %q: %w", fileName, err)
	}

	q.log.Info(ctx, "sync item enqueued", "id", item.ID, "kind", string(kind), "file", fileName)
	q.notifier.Notify()
	return item, nil
}

// Pending lists unsynced items oldest first.
func (q *Queue) Pending(ctx context.Context) ([]models.SyncItem, error) {
	return q.repo.GetPending(ctx)
}

// PendingCount returns how many items await delivery.
func (q *Queue) PendingCount(ctx context.Context) (int, error) {
	return q.repo.CountPending(ctx)
}

// Drain attempts to deliver every pending item, oldest first. At most
// one drain runs at a time: a concurrent call returns immediately with
// Skipped set. When the observer reports offline, the pass is a no-op
// with zero items processed.
//
// Each item is deleted from durable storage only after the transport
// confirms it. On a transport failure the pass stops at that item —
// later items are not skipped ahead — and the next pass re-attempts
// from the front in the same order. The returned error is non-nil only
// when the durable backend itself fails.
func (q *Queue) Drain(ctx context.Context) (DrainReport, error) {
	if !q.drainMu.TryLock() {
		return DrainReport{Skipped: true}, nil
	}
	defer q.drainMu.Unlock()

	if !q.observer.Online() {
		q.log.Debug(ctx, "drain skipped: offline")
		return DrainReport{}, nil
	}

	items, err := q.repo.GetPending(ctx)
	if err != nil {
		return DrainReport{}, fmt.Errorf("drain: %w", err)
	}
	if len(items) == 0 {
		return DrainReport{}, nil
	}

	report := DrainReport{}
	for i := range items {
		item := &items[i]

		if err := q.transport.Send(ctx, item); err != nil {
			report.FailedID = item.ID
			report.Reason = err
			q.log.Warn(ctx, "drain halted",
				"failed_id", item.ID, "processed", report.Processed, "error", err)
			break
		}

		if err := q.repo.DeleteByID(ctx, item.ID); err != nil {
			// delivered but not removed; the item will be re-sent next
			// pass, which at-least-once delivery permits
			if report.Processed > 0 {
				q.notifier.Notify()
			}
			return report, fmt.Errorf("drain: remove %s: %w", item.ID, err)
		}
		report.Processed++
	}

	if report.Processed > 0 {
		q.log.Info(ctx, "drain finished",
			"processed", report.Processed, "remaining_failure", report.FailedID != "")
		q.notifier.Notify()
	}
	return report, nil
}
