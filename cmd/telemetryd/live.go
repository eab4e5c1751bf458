package main

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/hawkeye-data/grid.report/internal/db"
	"github.com/hawkeye-data/grid.report/internal/httputil"
	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/hub"
	"github.com/hawkeye-data/grid.report/internal/telem/session"
)

const liveEventRing = 64

// liveBuffer keeps the most recent snapshot and a short ring of events for
// the HTTP API. It overwrites rather than queues: a poll always sees the
// freshest state regardless of how long since the last poll.
type liveBuffer struct {
	mu        sync.RWMutex
	latest    *session.Snapshot
	lastFinal *session.Snapshot
	events    []telem.TelemetryEvent

	// sessions is set when persistence is enabled, backing /api/sessions.
	sessions *db.DB
}

func newLiveBuffer() *liveBuffer {
	return &liveBuffer{}
}

// consume drains the subscription until the hub closes it.
func (b *liveBuffer) consume(sub *hub.Subscription) {
	snaps := sub.Snapshots()
	events := sub.Events()
	for snaps != nil || events != nil {
		select {
		case snap, ok := <-snaps:
			if !ok {
				snaps = nil
				continue
			}
			b.mu.Lock()
			b.latest = &snap
			if snap.Final {
				b.lastFinal = &snap
			}
			b.mu.Unlock()
			monitoring.Debugf("live: session %d frame %d (final=%v)", snap.UID, snap.LatestFrame, snap.Final)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			b.mu.Lock()
			b.events = append(b.events, ev)
			if len(b.events) > liveEventRing {
				b.events = b.events[len(b.events)-liveEventRing:]
			}
			b.mu.Unlock()
			monitoring.Debugf("live: event %s at %.1fs", ev.Code, ev.SessionTime)
		}
	}
}

func (b *liveBuffer) attachRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/live", b.handleLive)
	mux.HandleFunc("/api/events", b.handleEvents)
	mux.HandleFunc("/api/sessions", b.handleSessions)
}

func (b *liveBuffer) handleLive(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	snap := b.latest
	b.mu.RUnlock()

	if snap == nil {
		httputil.NotFound(w, "no session data received yet")
		return
	}
	httputil.WriteJSONOK(w, snap)
}

func (b *liveBuffer) handleEvents(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	events := append([]telem.TelemetryEvent(nil), b.events...)
	b.mu.RUnlock()

	httputil.WriteJSONOK(w, events)
}

func (b *liveBuffer) handleSessions(w http.ResponseWriter, r *http.Request) {
	if b.sessions == nil {
		httputil.NotFound(w, "persistence is not enabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	rows, err := b.sessions.Sessions(limit)
	if err != nil {
		monitoring.Logf("sessions query failed: %v", err)
		httputil.InternalServerError(w, "query failed")
		return
	}
	httputil.WriteJSONOK(w, rows)
}
