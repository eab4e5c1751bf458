package ingest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// UDPSocket is the subset of *net.UDPConn the listener needs; a fake
// implementation stands in during tests.
type UDPSocket interface {
	ReadFromUDP(b []byte) (int, *net.UDPAddr, error)
	SetReadBuffer(bytes int) error
	SetReadDeadline(t time.Time) error
	Close() error
}

// UDPSocketFactory creates listening sockets. The default binds a real UDP
// socket; tests substitute their own.
type UDPSocketFactory func(network string, addr *net.UDPAddr) (UDPSocket, error)

func realSocketFactory(network string, addr *net.UDPAddr) (UDPSocket, error) {
	return net.ListenUDP(network, addr)
}

// UDPListenerConfig configures the live receiver.
type UDPListenerConfig struct {
	Address       string // host:port, default ":20777"
	RcvBuf        int    // kernel receive buffer size, 0 keeps the default
	ReadDeadline  time.Duration
	Stats         Stats
	Forwarder     *Forwarder // optional raw-datagram redirect
	SocketFactory UDPSocketFactory
}

// UDPListener is the live Source: it owns the listening socket, stamps each
// datagram with a receive time and hands a private copy to emit. It never
// blocks on downstream processing; backpressure belongs to the ingress
// queue behind emit.
type UDPListener struct {
	cfg UDPListenerConfig
}

// NewUDPListener builds a listener, filling config defaults.
func NewUDPListener(cfg UDPListenerConfig) *UDPListener {
	if cfg.Address == "" {
		cfg.Address = ":20777"
	}
	if cfg.ReadDeadline == 0 {
		cfg.ReadDeadline = 100 * time.Millisecond
	}
	if cfg.SocketFactory == nil {
		cfg.SocketFactory = realSocketFactory
	}
	cfg.Stats = orNoop(cfg.Stats)
	return &UDPListener{cfg: cfg}
}

// Run binds the socket and receives until ctx is cancelled. A bind failure
// is fatal and surfaced to the caller; per-datagram read errors are logged
// and skipped.
func (l *UDPListener) Run(ctx context.Context, emit func(telem.RawDatagram)) error {
	addr, err := net.ResolveUDPAddr("udp", l.cfg.Address)
	if err != nil {
		return fmt.Errorf("resolve udp address %q: %w", l.cfg.Address, err)
	}
	conn, err := l.cfg.SocketFactory("udp", addr)
	if err != nil {
		return fmt.Errorf("listen udp %q: %w", l.cfg.Address, err)
	}
	defer conn.Close()

	if l.cfg.RcvBuf > 0 {
		if err := conn.SetReadBuffer(l.cfg.RcvBuf); err != nil {
			monitoring.Logf("udp listener: failed to set receive buffer to %d: %v", l.cfg.RcvBuf, err)
		}
	}
	monitoring.Logf("udp listener started on %s", l.cfg.Address)

	// Close the socket when the context ends so a blocked read returns
	// promptly even if the deadline has not fired yet.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	buf := make([]byte, telem.MaxDatagramSize)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := conn.SetReadDeadline(time.Now().Add(l.cfg.ReadDeadline)); err != nil {
			monitoring.Debugf("udp listener: set read deadline: %v", err)
		}
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue // re-check context
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				monitoring.Logf("udp listener stopping")
				return ctx.Err()
			}
			monitoring.Logf("udp read error: %v", err)
			continue
		}
		l.cfg.Stats.AddReceived(n)

		if l.cfg.Forwarder != nil {
			l.cfg.Forwarder.ForwardAsync(buf[:n])
		}

		// The receive buffer is reused; emit gets its own copy.
		data := make([]byte, n)
		copy(data, buf[:n])
		emit(telem.RawDatagram{Data: data, ReceivedAt: time.Now(), Source: src})
	}
}
