package ingest

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
)

// Capture file layout, per record: float64 little-endian seconds since the
// start of the recording, uint32 little-endian datagram length, then the
// raw datagram bytes. No file header. This matches existing telemetry
// recordings in the field.

const captureRecordHeader = 12

// maxCaptureRecord rejects absurd lengths so a corrupt or truncated file
// cannot trigger a huge allocation.
const maxCaptureRecord = 64 * 1024

// CaptureWriter appends timestamped datagrams to a capture file.
type CaptureWriter struct {
	f     *os.File
	w     *bufio.Writer
	start time.Time
	count int
}

// NewCaptureWriter creates (or truncates) path.
func NewCaptureWriter(path string) (*CaptureWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create capture file: %w", err)
	}
	return &CaptureWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one datagram. The record timestamp is the elapsed time
// since the first write.
func (cw *CaptureWriter) Write(data []byte, at time.Time) error {
	if cw.start.IsZero() {
		cw.start = at
	}
	var hdr [captureRecordHeader]byte
	binary.LittleEndian.PutUint64(hdr[0:8], math.Float64bits(at.Sub(cw.start).Seconds()))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(data)))
	if _, err := cw.w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := cw.w.Write(data); err != nil {
		return err
	}
	cw.count++
	return nil
}

// Count reports the number of records written so far.
func (cw *CaptureWriter) Count() int { return cw.count }

// Close flushes and closes the file.
func (cw *CaptureWriter) Close() error {
	if err := cw.w.Flush(); err != nil {
		cw.f.Close()
		return err
	}
	return cw.f.Close()
}

// CaptureRecord is one datagram read back from a capture file.
type CaptureRecord struct {
	Offset time.Duration // position within the recording
	Data   []byte
}

// ReadCaptureRecord reads the next record. Returns io.EOF at a clean end of
// file; a record cut off mid-way reports an error naming the corruption.
func ReadCaptureRecord(r io.Reader) (CaptureRecord, error) {
	var hdr [captureRecordHeader]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return CaptureRecord{}, io.EOF
		}
		return CaptureRecord{}, fmt.Errorf("capture record header: %w", err)
	}
	secs := math.Float64frombits(binary.LittleEndian.Uint64(hdr[0:8]))
	length := binary.LittleEndian.Uint32(hdr[8:12])
	if length > maxCaptureRecord {
		return CaptureRecord{}, fmt.Errorf("capture record length %d exceeds limit %d", length, maxCaptureRecord)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return CaptureRecord{}, fmt.Errorf("capture record body: %w", err)
	}
	return CaptureRecord{
		Offset: time.Duration(secs * float64(time.Second)),
		Data:   data,
	}, nil
}

// CaptureSource replays a capture file as a datagram Source, pacing emission
// by the recorded timestamps. It substitutes for the UDP listener behind the
// same interface.
type CaptureSource struct {
	Path  string
	Speed float64 // playback speed factor, 1.0 = realtime, 0 = as fast as possible
	Loop  bool
	Stats Stats
}

// Run replays the file until it ends (or forever with Loop) or ctx is
// cancelled.
func (cs *CaptureSource) Run(ctx context.Context, emit func(telem.RawDatagram)) error {
	stats := orNoop(cs.Stats)
	for {
		n, err := cs.playOnce(ctx, emit, stats)
		if err != nil {
			return err
		}
		monitoring.Logf("capture playback: %d datagrams from %s", n, cs.Path)
		if !cs.Loop || ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (cs *CaptureSource) playOnce(ctx context.Context, emit func(telem.RawDatagram), stats Stats) (int, error) {
	f, err := os.Open(cs.Path)
	if err != nil {
		return 0, fmt.Errorf("open capture file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	start := time.Now()
	count := 0
	for {
		if ctx.Err() != nil {
			return count, nil
		}
		rec, err := ReadCaptureRecord(r)
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			// Truncated tail records happen when a recording is cut short;
			// treat as end of capture rather than failing the pipeline.
			monitoring.Logf("capture playback stopping: %v", err)
			return count, nil
		}

		if cs.Speed > 0 {
			due := start.Add(time.Duration(float64(rec.Offset) / cs.Speed))
			if wait := time.Until(due); wait > 0 {
				select {
				case <-ctx.Done():
					return count, nil
				case <-time.After(wait):
				}
			}
		}

		stats.AddReceived(len(rec.Data))
		emit(telem.RawDatagram{Data: rec.Data, ReceivedAt: time.Now()})
		count++
	}
}
