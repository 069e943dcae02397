// Package netwatch tracks connectivity as an explicit object owned by the
// application root. Components that care about transitions subscribe to
// it; nothing else may mutate the state.
package netwatch

import (
	"context"
	"sync"
	"time"
)

// Event selects which transition a subscription fires on.
type Event int

const (
	// EventOnline fires on the Offline -> Online transition.
	EventOnline Event = iota
	// EventOffline fires on the Online -> Offline transition.
	EventOffline
)

// Handler is a transition callback. Handlers run synchronously in
// subscription order; long work belongs in a goroutine spawned by the
// handler so event delivery is never blocked.
type Handler func()

type subscription struct {
	id int
	fn Handler
}

// Observer is a two-state connectivity machine. Duplicate raw signals in
// the current state do not re-fire notifications: only actual transitions
// do.
type Observer struct {
	mu     sync.Mutex
	online bool
	nextID int
	subs   map[Event][]subscription
}

// New creates an Observer starting from the platform's current
// connectivity.
func New(initialOnline bool) *Observer {
	return &Observer{
		online: initialOnline,
		subs:   map[Event][]subscription{},
	}
}

// Online reports the current state.
func (o *Observer) Online() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.online
}

// SetOnline feeds a raw connectivity signal into the machine. A signal
// matching the current state is dropped; a transition notifies that
// event's subscribers in subscription order.
func (o *Observer) SetOnline(online bool) {
	o.mu.Lock()
	if o.online == online {
		o.mu.Unlock()
		return
	}
	o.online = online

	event := EventOffline
	if online {
		event = EventOnline
	}
	handlers := make([]subscription, len(o.subs[event]))
	copy(handlers, o.subs[event])
	o.mu.Unlock()

	// Invoked outside the lock so handlers can read Online() or manage
	// subscriptions.
	for _, s := range handlers {
		s.fn()
	}
}

// Subscribe registers fn for the given event and returns a token for
// Unsubscribe. Go functions are not comparable, so the token stands in
// for referential identity.
func (o *Observer) Subscribe(event Event, fn Handler) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	o.subs[event] = append(o.subs[event], subscription{id: o.nextID, fn: fn})
	return o.nextID
}

// Unsubscribe removes the subscription with the given token. Unknown
// tokens are a no-op, not an error.
func (o *Observer) Unsubscribe(event Event, id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	subs := o.subs[event]
	for i, s := range subs {
		if s.id == id {
			o.subs[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Prober answers whether the sync target is reachable right now.
type Prober interface {
	Ping(ctx context.Context) error
}

const probeTimeout = 3 * time.Second

// Watch polls the prober on the given interval and feeds the results into
// the state machine. It blocks until ctx is done, so run it in its own
// goroutine.
// The first probe happens immediately, so startup state reflects actual
// reachability rather than waiting out one interval.
func (o *Observer) Watch(ctx context.Context, prober Prober, interval time.Duration) {
	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := prober.Ping(pctx)
		cancel()

		o.SetOnline(err == nil)
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probe()

		case <-ctx.Done():
			return
		}
	}
}
