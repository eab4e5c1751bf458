package session

import (
	"time"

	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Sink receives the aggregator's output. Implementations must not block for
// long; the hub queues deliveries per consumer.
type Sink interface {
	OnSnapshot(Snapshot)
	OnEvent(telem.TelemetryEvent)
}

// Stats counts aggregation outcomes. The no-op default keeps the hot path
// free of nil checks.
type Stats interface {
	AddStaleDrop()
	AddUnknownUIDDrop()
	AddSnapshot()
	AddSessionStart()
	AddSessionRetire()
	AddEvent()
}

type noopStats struct{}

func (noopStats) AddStaleDrop()      {}
func (noopStats) AddUnknownUIDDrop() {}
func (noopStats) AddSnapshot()       {}
func (noopStats) AddSessionStart()   {}
func (noopStats) AddSessionRetire()  {}
func (noopStats) AddEvent()          {}

// Config tunes the aggregator. Zero values select the defaults.
type Config struct {
	// IdleTimeout retires a session that has received no packets of any
	// family for this long. Default 5s.
	IdleTimeout time.Duration

	// SnapshotInterval coalesces emission: successive dirtying packets
	// inside one interval produce a single snapshot. Default 50ms, which
	// tracks the fastest families' send cadence. Negative means emit on
	// every changing packet.
	SnapshotInterval time.Duration

	Stats Stats
}

const (
	defaultIdleTimeout      = 5 * time.Second
	defaultSnapshotInterval = 50 * time.Millisecond
)

// Aggregator fuses decoded packets into per-session snapshots. It is a
// single-owner state machine: Apply, Tick and Close must all be called from
// one goroutine (the pipeline's aggregation worker).
type Aggregator struct {
	sink  Sink
	stats Stats

	idleTimeout      time.Duration
	snapshotInterval time.Duration

	cur *SessionState // nil when no session is live

	dirty    bool
	lastEmit time.Time
}

func NewAggregator(sink Sink, cfg Config) *Aggregator {
	a := &Aggregator{
		sink:             sink,
		stats:            cfg.Stats,
		idleTimeout:      cfg.IdleTimeout,
		snapshotInterval: cfg.SnapshotInterval,
	}
	if a.stats == nil {
		a.stats = noopStats{}
	}
	if a.idleTimeout <= 0 {
		a.idleTimeout = defaultIdleTimeout
	}
	if a.snapshotInterval == 0 {
		a.snapshotInterval = defaultSnapshotInterval
	}
	return a
}

// Current returns the live session state, or nil. Owner-goroutine only.
func (a *Aggregator) Current() *SessionState { return a.cur }

// Apply merges one decoded packet. Packets with a zero session UID are sent
// while the game sits in menus and carry no attributable state; they are
// dropped and counted.
func (a *Aggregator) Apply(pkt *telem.Packet) {
	h := pkt.Header
	if h.SessionUID == 0 {
		a.stats.AddUnknownUIDDrop()
		return
	}
	now := pkt.ReceivedAt
	if now.IsZero() {
		now = time.Now()
	}

	if a.cur != nil && a.cur.UID != h.SessionUID {
		// A new session supersedes the old one atomically.
		a.retire(now)
	}
	if a.cur == nil {
		a.cur = newSessionState(h, now)
		a.stats.AddSessionStart()
		monitoring.Logf("session %016x started (format %d, %s)", h.SessionUID, h.PacketFormat, h.PacketID)
	}

	s := a.cur
	s.LastPacketAt = now
	if h.SessionTime > s.SessionTime {
		s.SessionTime = h.SessionTime
	}

	if pkt.Payload == nil {
		// Known but ignored family. Still refreshes the idle clock.
		return
	}

	if ev, ok := pkt.Payload.(*telem.EventData); ok {
		a.applyEvent(h, ev, now)
		return
	}

	if !s.admitFrame(h.PacketID, h.FrameIdentifier) {
		a.stats.AddStaleDrop()
		monitoring.Debugf("session %016x: stale %s frame %d dropped", s.UID, h.PacketID, h.FrameIdentifier)
		return
	}

	if s.apply(pkt.Payload) {
		a.dirty = true
		a.maybeEmit(now, false)
	}
}

// applyEvent forwards the event to the sink in arrival order. Events never
// merge into SessionState; a session-ended signal retires the live session.
func (a *Aggregator) applyEvent(h telem.Header, ev *telem.EventData, now time.Time) {
	a.stats.AddEvent()
	a.sink.OnEvent(telem.TelemetryEvent{
		SessionUID:  h.SessionUID,
		SessionTime: h.SessionTime,
		Frame:       h.FrameIdentifier,
		Code:        ev.Code,
		Detail:      ev.Detail,
		ReceivedAt:  now,
	})
	if ev.Code == telem.EventSessionEnded {
		a.retire(now)
	}
}

// Tick drives time-based behaviour: pending coalesced emission and idle
// retirement. The pipeline calls it on a short periodic cadence.
func (a *Aggregator) Tick(now time.Time) {
	if a.cur == nil {
		return
	}
	if now.Sub(a.cur.LastPacketAt) >= a.idleTimeout {
		monitoring.Logf("session %016x idle for %v, retiring", a.cur.UID, a.idleTimeout)
		a.retire(now)
		return
	}
	if a.dirty {
		a.maybeEmit(now, false)
	}
}

// Close retires any live session, flushing its final snapshot.
func (a *Aggregator) Close() {
	a.retire(time.Now())
}

func (a *Aggregator) maybeEmit(now time.Time, force bool) {
	if !force && a.snapshotInterval > 0 && now.Sub(a.lastEmit) < a.snapshotInterval {
		return // coalesce, Tick will pick it up
	}
	a.emit(now, false)
}

func (a *Aggregator) emit(now time.Time, final bool) {
	a.sink.OnSnapshot(a.cur.snapshot(now, final))
	a.stats.AddSnapshot()
	a.dirty = false
	a.lastEmit = now
}

// retire flushes exactly one final snapshot for the live session and clears
// the state so the next packet starts fresh.
func (a *Aggregator) retire(now time.Time) {
	if a.cur == nil {
		return
	}
	a.emit(now, true)
	a.stats.AddSessionRetire()
	monitoring.Logf("session %016x retired after %v", a.cur.UID, now.Sub(a.cur.StartedAt).Round(time.Second))
	a.cur = nil
}
