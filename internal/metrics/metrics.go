// Package metrics registers the Prometheus instrumentation for the
// telemetry engine and adapts it to the stats interfaces the pipeline
// stages report through.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/parse"
)

// Metrics holds all Prometheus series for the engine.
type Metrics struct {
	// Receiver metrics
	DatagramsReceived prometheus.Counter
	BytesReceived     prometheus.Counter
	QueueDropped      prometheus.Counter
	ForwardDropped    prometheus.Counter

	// Decoder metrics
	PacketsDecoded prometheus.Counter
	PacketsByType  *prometheus.CounterVec
	PacketsIgnored prometheus.Counter
	DecodeErrors   *prometheus.CounterVec

	// Aggregator metrics
	StaleDrops       prometheus.Counter
	UnknownUIDDrops  prometheus.Counter
	SnapshotsEmitted prometheus.Counter
	SessionsStarted  prometheus.Counter
	SessionsRetired  prometheus.Counter
	EventsForwarded  prometheus.Counter
}

// New creates and registers all metrics with reg. Passing nil registers on
// the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		DatagramsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_datagrams_received_total",
			Help: "Total number of UDP datagrams received",
		}),
		BytesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_bytes_received_total",
			Help: "Total bytes of raw telemetry received",
		}),
		QueueDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_queue_dropped_total",
			Help: "Datagrams evicted from the full ingress queue",
		}),
		ForwardDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_forward_dropped_total",
			Help: "Datagrams dropped by the redirect forwarder",
		}),

		PacketsDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_packets_decoded_total",
			Help: "Datagrams successfully decoded into typed packets",
		}),
		PacketsByType: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "telemetry_packets_by_type_total",
			Help: "Decoded packets by packet family",
		}, []string{"type"}),
		PacketsIgnored: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_packets_ignored_total",
			Help: "Datagrams of known but uninterpreted families",
		}),
		DecodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "telemetry_decode_errors_total",
			Help: "Rejected datagrams by rejection reason",
		}, []string{"reason"}),

		StaleDrops: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_stale_drops_total",
			Help: "Reordered packets rejected to protect monotonic counters",
		}),
		UnknownUIDDrops: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_unknown_uid_drops_total",
			Help: "Packets dropped for carrying a zero session UID",
		}),
		SnapshotsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_snapshots_emitted_total",
			Help: "Session snapshots handed to the distribution hub",
		}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_sessions_started_total",
			Help: "Sessions created from a fresh session UID",
		}),
		SessionsRetired: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_sessions_retired_total",
			Help: "Sessions retired by supersession, end event or idle timeout",
		}),
		EventsForwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_events_total",
			Help: "Discrete telemetry events forwarded to consumers",
		}),
	}
}

// IngestStats adapts Metrics to the receiver-side stats interface.
type IngestStats struct{ m *Metrics }

func (m *Metrics) Ingest() *IngestStats { return &IngestStats{m} }

func (s *IngestStats) AddReceived(bytes int) {
	s.m.DatagramsReceived.Inc()
	s.m.BytesReceived.Add(float64(bytes))
}

func (s *IngestStats) AddQueueDropped() { s.m.QueueDropped.Inc() }

func (s *IngestStats) AddForwardDropped() { s.m.ForwardDropped.Inc() }

// DecodeStats adapts Metrics to the decode-stage stats interface.
type DecodeStats struct{ m *Metrics }

func (m *Metrics) Decode() *DecodeStats { return &DecodeStats{m} }

func (s *DecodeStats) AddDecoded(id telem.PacketID) {
	s.m.PacketsDecoded.Inc()
	s.m.PacketsByType.WithLabelValues(id.String()).Inc()
}

func (s *DecodeStats) AddIgnored() { s.m.PacketsIgnored.Inc() }

func (s *DecodeStats) AddDecodeError(reason parse.Reason) {
	s.m.DecodeErrors.WithLabelValues(reason.String()).Inc()
}

// SessionStats adapts Metrics to the aggregator stats interface.
type SessionStats struct{ m *Metrics }

func (m *Metrics) Session() *SessionStats { return &SessionStats{m} }

func (s *SessionStats) AddStaleDrop()      { s.m.StaleDrops.Inc() }
func (s *SessionStats) AddUnknownUIDDrop() { s.m.UnknownUIDDrops.Inc() }
func (s *SessionStats) AddSnapshot()       { s.m.SnapshotsEmitted.Inc() }
func (s *SessionStats) AddSessionStart()   { s.m.SessionsStarted.Inc() }
func (s *SessionStats) AddSessionRetire()  { s.m.SessionsRetired.Inc() }
func (s *SessionStats) AddEvent()          { s.m.EventsForwarded.Inc() }
