package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/parse"
)

func TestAdaptersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	in := m.Ingest()
	in.AddReceived(1349)
	in.AddReceived(45)
	in.AddQueueDropped()

	if got := testutil.ToFloat64(m.DatagramsReceived); got != 2 {
		t.Errorf("DatagramsReceived = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.BytesReceived); got != 1394 {
		t.Errorf("BytesReceived = %v, want 1394", got)
	}
	if got := testutil.ToFloat64(m.QueueDropped); got != 1 {
		t.Errorf("QueueDropped = %v, want 1", got)
	}

	dec := m.Decode()
	dec.AddDecoded(telem.PacketLapData)
	dec.AddDecoded(telem.PacketLapData)
	dec.AddIgnored()
	dec.AddDecodeError(parse.ReasonSizeMismatch)

	if got := testutil.ToFloat64(m.PacketsDecoded); got != 2 {
		t.Errorf("PacketsDecoded = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.PacketsByType.WithLabelValues("lap_data")); got != 2 {
		t.Errorf("PacketsByType[lap_data] = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DecodeErrors.WithLabelValues("size_mismatch")); got != 1 {
		t.Errorf("DecodeErrors[size_mismatch] = %v, want 1", got)
	}

	sess := m.Session()
	sess.AddSessionStart()
	sess.AddStaleDrop()
	sess.AddSnapshot()
	sess.AddSessionRetire()

	if got := testutil.ToFloat64(m.SessionsStarted); got != 1 {
		t.Errorf("SessionsStarted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.StaleDrops); got != 1 {
		t.Errorf("StaleDrops = %v, want 1", got)
	}
}

func TestNewRegistersOnProvidedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	// Vec series appear only after first use; plain counters register
	// immediately.
	if len(families) == 0 {
		t.Fatal("no metric families registered")
	}
}
