//go:build !pcap
// +build !pcap

package ingest

import (
	"context"
	"fmt"

	"github.com/hawkeye-data/grid.report/internal/telem"
)

// ReplayPCAPFile is a stub implementation when PCAP support is disabled.
// Build with -tags=pcap to enable PCAP file replay.
func ReplayPCAPFile(ctx context.Context, pcapFile string, udpPort int, stats Stats, emit func(telem.RawDatagram)) error {
	return fmt.Errorf("PCAP support not enabled: rebuild with -tags=pcap to enable PCAP replay")
}
