// Command telemetry-player replays a capture file to a UDP target at the
// recorded pace, standing in for the game when developing against live
// traffic is impractical.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os/signal"
	"syscall"

	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/ingest"
)

var (
	inFile = flag.String("in", "telemetry.cap", "Capture file to replay")
	target = flag.String("target", "localhost:20777", "UDP target address")
	speed  = flag.Float64("speed", 1.0, "Playback speed factor (0 = as fast as possible)")
	loop   = flag.Bool("loop", false, "Restart playback when the file ends")
)

func main() {
	flag.Parse()

	addr, err := net.ResolveUDPAddr("udp", *target)
	if err != nil {
		log.Fatalf("Failed to resolve target %q: %v", *target, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		log.Fatalf("Failed to dial target %q: %v", *target, err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := &ingest.CaptureSource{
		Path:  *inFile,
		Speed: *speed,
		Loop:  *loop,
	}

	var sent, sendErrs int
	log.Printf("Replaying %s to %s (speed %.2g, loop %v)", *inFile, *target, *speed, *loop)
	err = source.Run(ctx, func(d telem.RawDatagram) {
		if _, werr := conn.Write(d.Data); werr != nil {
			sendErrs++
			if sendErrs%100 == 0 {
				log.Printf("Send errors: %d (latest: %v)", sendErrs, werr)
			}
			return
		}
		sent++
	})
	if err != nil && err != context.Canceled {
		log.Fatalf("Playback failed: %v", err)
	}
	log.Printf("Sent %d datagrams (%d send errors)", sent, sendErrs)
}
