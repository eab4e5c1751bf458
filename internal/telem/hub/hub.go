// Package hub fans aggregator output out to registered consumers. Each
// subscription carries its own bounded queue and backpressure policy, so a
// slow consumer sheds or delays only its own deliveries and never stalls the
// others beyond a bounded wait.
package hub

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/session"
)

// Policy selects what happens when a subscription's queue is full.
type Policy int

const (
	// DropOldest evicts the oldest queued item to make room. Suited to
	// live-display consumers where only the freshest state matters.
	DropOldest Policy = iota

	// Block waits up to the subscription's block timeout for queue space,
	// then sheds the item and records an explicit overflow error. Suited
	// to persistence consumers that must never lose data silently.
	Block
)

func (p Policy) String() string {
	if p == Block {
		return "block"
	}
	return "drop_oldest"
}

// ErrOverflow is recorded on a Block-policy subscription when a delivery had
// to be shed after the bounded wait expired.
var ErrOverflow = errors.New("consumer queue overflow")

// SubscriptionConfig declares a consumer's queue and policy.
type SubscriptionConfig struct {
	Name         string
	Policy       Policy
	QueueSize    int           // default 64
	BlockTimeout time.Duration // Block policy only, default 50ms
}

const (
	defaultQueueSize    = 64
	defaultBlockTimeout = 50 * time.Millisecond
)

// Subscription is a consumer's handle: ordered, possibly lossy (per policy)
// channels of snapshots and events, plus delivery counters.
type Subscription struct {
	id   uuid.UUID
	name string
	cfg  SubscriptionConfig

	snaps  chan session.Snapshot
	events chan telem.TelemetryEvent

	delivered atomic.Uint64
	dropped   atomic.Uint64

	mu  sync.Mutex
	err error
}

// ID returns the subscription's unique handle id.
func (s *Subscription) ID() uuid.UUID { return s.id }

// Name returns the consumer name given at subscribe time.
func (s *Subscription) Name() string { return s.name }

// Snapshots yields session snapshots in emission order. The channel closes
// on unsubscribe or hub shutdown.
func (s *Subscription) Snapshots() <-chan session.Snapshot { return s.snaps }

// Events yields telemetry events in arrival order. The channel closes on
// unsubscribe or hub shutdown.
func (s *Subscription) Events() <-chan telem.TelemetryEvent { return s.events }

// Delivered reports items successfully queued to this consumer.
func (s *Subscription) Delivered() uint64 { return s.delivered.Load() }

// Dropped reports items shed for this consumer.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Err returns the first overflow error recorded for a Block-policy
// subscription, or nil.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) recordErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

// Hub is the fan-out dispatcher. It implements session.Sink so the
// aggregator publishes into it directly. Consumers register and deregister
// at any time without the aggregator knowing.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]*Subscription
	closed bool
}

func New() *Hub {
	return &Hub{subs: make(map[uuid.UUID]*Subscription)}
}

// Subscribe registers a consumer and returns its handle.
func (h *Hub) Subscribe(cfg SubscriptionConfig) *Subscription {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = defaultBlockTimeout
	}
	sub := &Subscription{
		id:     uuid.New(),
		name:   cfg.Name,
		cfg:    cfg,
		snaps:  make(chan session.Snapshot, cfg.QueueSize),
		events: make(chan telem.TelemetryEvent, cfg.QueueSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.snaps)
		close(sub.events)
		return sub
	}
	h.subs[sub.id] = sub
	monitoring.Logf("hub: consumer %q subscribed (policy=%s queue=%d)", cfg.Name, cfg.Policy, cfg.QueueSize)
	return sub
}

// Unsubscribe removes a consumer and closes its channels. Safe to call with
// an unknown or already-removed id.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()
	if ok {
		close(sub.snaps)
		close(sub.events)
		monitoring.Logf("hub: consumer %q unsubscribed (delivered=%d dropped=%d)", sub.name, sub.Delivered(), sub.Dropped())
	}
}

// OnSnapshot delivers a snapshot to every subscription per its policy.
func (h *Hub) OnSnapshot(snap session.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		deliverSnapshot(sub, snap)
	}
}

// OnEvent delivers an event to every subscription per its policy.
func (h *Hub) OnEvent(ev telem.TelemetryEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		deliverEvent(sub, ev)
	}
}

// Close closes every subscription's channels. Further publishes are no-ops
// and further subscribes return pre-closed handles.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		close(sub.snaps)
		close(sub.events)
		delete(h.subs, id)
	}
}

func deliverSnapshot(sub *Subscription, snap session.Snapshot) {
	select {
	case sub.snaps <- snap:
		sub.delivered.Add(1)
		return
	default:
	}

	switch sub.cfg.Policy {
	case DropOldest:
		// Evict until the fresh snapshot fits. The consumer sees the most
		// recent items its queue can hold.
		for {
			select {
			case <-sub.snaps:
				sub.dropped.Add(1)
			default:
			}
			select {
			case sub.snaps <- snap:
				sub.delivered.Add(1)
				return
			default:
			}
		}
	case Block:
		t := time.NewTimer(sub.cfg.BlockTimeout)
		defer t.Stop()
		select {
		case sub.snaps <- snap:
			sub.delivered.Add(1)
		case <-t.C:
			sub.dropped.Add(1)
			sub.recordErr(ErrOverflow)
			monitoring.Logf("hub: consumer %q overflow, snapshot shed after %v", sub.name, sub.cfg.BlockTimeout)
		}
	}
}

func deliverEvent(sub *Subscription, ev telem.TelemetryEvent) {
	select {
	case sub.events <- ev:
		sub.delivered.Add(1)
		return
	default:
	}

	switch sub.cfg.Policy {
	case DropOldest:
		for {
			select {
			case <-sub.events:
				sub.dropped.Add(1)
			default:
			}
			select {
			case sub.events <- ev:
				sub.delivered.Add(1)
				return
			default:
			}
		}
	case Block:
		t := time.NewTimer(sub.cfg.BlockTimeout)
		defer t.Stop()
		select {
		case sub.events <- ev:
			sub.delivered.Add(1)
		case <-t.C:
			sub.dropped.Add(1)
			sub.recordErr(ErrOverflow)
			monitoring.Logf("hub: consumer %q overflow, event shed after %v", sub.name, sub.cfg.BlockTimeout)
		}
	}
}
