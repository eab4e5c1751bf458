package ingest

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/hawkeye-data/grid.report/internal/monitoring"
)

// Forwarder mirrors received datagrams to a second UDP endpoint so another
// tool can consume the same stream. Forwarding is asynchronous and lossy:
// when its channel is full the datagram is dropped and counted rather than
// stalling the receiver.
type Forwarder struct {
	conn     *net.UDPConn
	ch       chan []byte
	stats    Stats
	address  string
	logEvery time.Duration
}

// NewForwarder dials the redirect target.
func NewForwarder(addr string, port int, stats Stats) (*Forwarder, error) {
	target := fmt.Sprintf("%s:%d", addr, port)
	udpAddr, err := net.ResolveUDPAddr("udp", target)
	if err != nil {
		return nil, fmt.Errorf("resolve forward address %q: %w", target, err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("dial forward address %q: %w", target, err)
	}
	return &Forwarder{
		conn:     conn,
		ch:       make(chan []byte, 1000),
		stats:    orNoop(stats),
		address:  target,
		logEvery: time.Minute,
	}, nil
}

// Start launches the send goroutine. Send errors are aggregated and logged
// at most once per interval.
func (f *Forwarder) Start(ctx context.Context) {
	go func() {
		var sendErrs int
		var lastErr error
		ticker := time.NewTicker(f.logEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case pkt := <-f.ch:
				if _, err := f.conn.Write(pkt); err != nil {
					sendErrs++
					lastErr = err
				}
			case <-ticker.C:
				if sendErrs > 0 {
					monitoring.Logf("forwarder: %d datagrams failed to %s (latest: %v)", sendErrs, f.address, lastErr)
					sendErrs = 0
					lastErr = nil
				}
			}
		}
	}()
	monitoring.Logf("forwarding datagrams to %s", f.address)
}

// ForwardAsync queues a copy of pkt for forwarding, dropping it if the
// buffer is full.
func (f *Forwarder) ForwardAsync(pkt []byte) {
	cp := make([]byte, len(pkt))
	copy(cp, pkt)
	select {
	case f.ch <- cp:
	default:
		f.stats.AddForwardDropped()
	}
}

// Close releases the dialled socket.
func (f *Forwarder) Close() error {
	return f.conn.Close()
}
