// Command telemetry-recorder captures raw telemetry datagrams from a UDP
// port into a capture file for later replay with telemetry-player or
// telemetryd -capture.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/ingest"
)

var (
	listenAddr = flag.String("listen", ":20777", "UDP listen address")
	outFile    = flag.String("out", "telemetry.cap", "Output capture file")
	duration   = flag.Duration("duration", 0, "Stop after this long (0 = until interrupted)")
	rcvBuf     = flag.Int("rcvbuf", 1<<20, "UDP receive buffer size in bytes")
)

type recorderStats struct {
	datagrams atomic.Int64
	bytes     atomic.Int64
}

func (s *recorderStats) AddReceived(n int) {
	s.datagrams.Add(1)
	s.bytes.Add(int64(n))
}
func (s *recorderStats) AddQueueDropped()   {}
func (s *recorderStats) AddForwardDropped() {}

func main() {
	flag.Parse()

	writer, err := ingest.NewCaptureWriter(*outFile)
	if err != nil {
		log.Fatalf("Failed to create capture file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	stats := &recorderStats{}
	listener := ingest.NewUDPListener(ingest.UDPListenerConfig{
		Address: *listenAddr,
		RcvBuf:  *rcvBuf,
		Stats:   stats,
	})

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Printf("Recorded %d datagrams (%.1f KB)",
					stats.datagrams.Load(), float64(stats.bytes.Load())/1024)
			}
		}
	}()

	log.Printf("Recording telemetry from %s to %s", *listenAddr, *outFile)
	err = listener.Run(ctx, func(d telem.RawDatagram) {
		if werr := writer.Write(d.Data, d.ReceivedAt); werr != nil {
			log.Printf("Write failed: %v", werr)
		}
	})
	if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
		log.Printf("Listener error: %v", err)
	}

	if err := writer.Close(); err != nil {
		log.Fatalf("Failed to close capture file: %v", err)
	}
	log.Printf("Wrote %d datagrams to %s", writer.Count(), *outFile)
}
