package notify

import (
	"sync"

	"github.com/google/uuid"
)

const subscriberBuffer = 16

// Publisher is the side of the relay seen by mutating use cases. Delivery is
// fire-and-forget: Publish never blocks and never reports errors.
type Publisher interface {
	Publish(userID uuid.UUID, event Event)
}

// Subscriber is one live connection's inbox. Events for a slow consumer are
// dropped once the buffer fills; the REST read path remains the source of
// truth for missed updates.
type Subscriber struct {
	ch chan Event
}

// Events returns the receive side of the subscriber inbox. The channel is
// closed when the subscriber is removed or the registry shuts down.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Registry maps connected user identities to their live subscribers. It is
// an explicit object owned by the process lifecycle, not a package-level
// singleton; entries are added on connect and removed on disconnect.
type Registry struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]map[*Subscriber]struct{}
	closed bool
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[uuid.UUID]map[*Subscriber]struct{})}
}

// Subscribe registers a new connection for the user and returns its inbox.
// Returns nil after Close.
func (r *Registry) Subscribe(userID uuid.UUID) *Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	sub := &Subscriber{ch: make(chan Event, subscriberBuffer)}
	if r.subs[userID] == nil {
		r.subs[userID] = make(map[*Subscriber]struct{})
	}
	r.subs[userID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the connection and closes its inbox.
func (r *Registry) Unsubscribe(userID uuid.UUID, sub *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub == nil || r.closed {
		return
	}
	if set, ok := r.subs[userID]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.ch)
		}
		if len(set) == 0 {
			delete(r.subs, userID)
		}
	}
}

// Publish delivers the event to every live connection of the user. Sends
// are non-blocking; a full inbox drops the event.
func (r *Registry) Publish(userID uuid.UUID, event Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	for sub := range r.subs[userID] {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Connections reports how many live connections the user has.
func (r *Registry) Connections(userID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[userID])
}

// Close tears down every subscriber. Used on process shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for _, set := range r.subs {
		for sub := range set {
			close(sub.ch)
		}
	}
	r.subs = make(map[uuid.UUID]map[*Subscriber]struct{})
}
