package service

import (
	"sync"

	"github.com/pkordes/tripstore/internal/metrics"
)

// Collection names used in change events.
const (
	CollectionTrips      = "trips"
	CollectionBookings   = "bookings"
	CollectionSavedItems = "savedItems"
	CollectionAll        = "all"
)

// Event tells subscribers that a collection changed. Subscribers re-read
// whatever they render; the event carries no data.
type Event struct {
	Collection string `json:"collection"`
	Op         string `json:"op"`
	ID         string `json:"id,omitempty"`
}

// Broker fans change events out to subscribers. Each subscriber has a
// one-slot buffer: when it falls behind, the pending event is replaced by
// the newest one, so publishers never block.
type Broker struct {
	metrics *metrics.Metrics

	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	closed bool
}

// NewBroker returns a broker with no subscribers. m may be nil.
func NewBroker(m *metrics.Metrics) *Broker {
	return &Broker{metrics: m, subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch
	b.metrics.AddSubscribers(1)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; !ok {
				return
			}
			delete(b.subs, id)
			close(ch)
			b.metrics.AddSubscribers(-1)
		})
	}
}

// Publish delivers e to every subscriber without blocking.
func (b *Broker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			// Full: drop the stale event and keep the newest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- e:
			default:
			}
		}
	}
}

// Close closes every subscriber channel. Later subscriptions receive an
// already closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
		b.metrics.AddSubscribers(-1)
	}
}
