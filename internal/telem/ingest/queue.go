package ingest

import (
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Queue is the bounded ingress buffer between the receiver and the decode
// workers. When full it evicts the oldest pending datagram: the game does
// not retransmit and a stale datagram is worth less than the one that just
// arrived. Push never blocks.
//
// Push is called from the single receiver goroutine; Chan is drained by the
// decode workers.
type Queue struct {
	ch    chan telem.RawDatagram
	stats Stats
}

// NewQueue builds an ingress queue holding up to capacity datagrams.
func NewQueue(capacity int, stats Stats) *Queue {
	if capacity <= 0 {
		capacity = 256
	}
	return &Queue{
		ch:    make(chan telem.RawDatagram, capacity),
		stats: orNoop(stats),
	}
}

// Push enqueues a datagram, evicting the oldest entry if the queue is full.
func (q *Queue) Push(d telem.RawDatagram) {
	for {
		select {
		case q.ch <- d:
			return
		default:
		}
		select {
		case <-q.ch:
			q.stats.AddQueueDropped()
		default:
		}
	}
}

// Chan exposes the drain side of the queue.
func (q *Queue) Chan() <-chan telem.RawDatagram { return q.ch }

// Close closes the drain channel. Only the pushing side may call it, after
// the source has stopped.
func (q *Queue) Close() { close(q.ch) }
