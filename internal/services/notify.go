package services

import "sync"

// Notifier fans out "store mutated" signals. The core emits one after a
// successful put/delete/clear/enqueue/drain-removal; the presentation
// layer subscribes and decides when to re-query. Callbacks run
// synchronously in subscription order and must be quick.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   []notifierSub
}

type notifierSub struct {
	id int
	fn func()
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns a token for Unsubscribe.
func (n *Notifier) Subscribe(fn func()) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.subs = append(n.subs, notifierSub{id: n.nextID, fn: fn})
	return n.nextID
}

// Unsubscribe removes a subscription; unknown tokens are a no-op.
func (n *Notifier) Unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}

// Notify invokes every subscriber.
func (n *Notifier) Notify() {
	n.mu.Lock()
	subs := make([]notifierSub, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
