// Package ingest owns the raw-datagram side of the pipeline: the UDP
// listener, the capture-file playback source, the bounded ingress queue and
// the optional redirect forwarder. Live socket and playback file implement
// the same Source interface, so swapping them is wiring, not a code fork.
package ingest

import (
	"context"

	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Source produces timestamped raw datagrams until its input is exhausted or
// the context is cancelled. Emit is called from a single goroutine; the
// datagram bytes handed to it are owned by the receiver.
type Source interface {
	Run(ctx context.Context, emit func(telem.RawDatagram)) error
}

// Stats receives receive/drop accounting from the ingest side. A nil-safe
// no-op implementation is substituted when none is supplied.
type Stats interface {
	AddReceived(bytes int)
	AddQueueDropped()
	AddForwardDropped()
}

type noopStats struct{}

func (noopStats) AddReceived(int)    {}
func (noopStats) AddQueueDropped()   {}
func (noopStats) AddForwardDropped() {}

func orNoop(s Stats) Stats {
	if s == nil {
		return noopStats{}
	}
	return s
}
