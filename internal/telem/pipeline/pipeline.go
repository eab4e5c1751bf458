// Package pipeline assembles the ingestion chain: datagram source, bounded
// ingress queue, decode workers, session aggregator and distribution hub.
// Shutdown propagates in stage order so every in-flight datagram is either
// fully processed or cleanly dropped, and no snapshot is emitted after the
// hub has closed.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/hub"
	"github.com/hawkeye-data/grid.report/internal/telem/ingest"
	"github.com/hawkeye-data/grid.report/internal/telem/parse"
	"github.com/hawkeye-data/grid.report/internal/telem/session"
)

// DecodeStats counts decode outcomes per datagram.
type DecodeStats interface {
	AddDecoded(id telem.PacketID)
	AddIgnored()
	AddDecodeError(reason parse.Reason)
}

type noopDecodeStats struct{}

func (noopDecodeStats) AddDecoded(telem.PacketID)   {}
func (noopDecodeStats) AddIgnored()                 {}
func (noopDecodeStats) AddDecodeError(parse.Reason) {}

// Config wires a pipeline. Source and Hub are required; everything else has
// defaults.
type Config struct {
	Source ingest.Source
	Hub    *hub.Hub

	// QueueCapacity bounds the raw ingress queue. Overflow drops the
	// oldest datagram. Default 256.
	QueueCapacity int

	// DecodeWorkers sets the decode pool size. Decoding is pure, so
	// workers scale without coordination. Default 2.
	DecodeWorkers int

	// TickInterval drives the aggregator's idle and coalescing clock.
	// Default 25ms, comfortably under the packet cadence.
	TickInterval time.Duration

	Aggregator  session.Config
	IngestStats ingest.Stats
	DecodeStats DecodeStats
}

const (
	defaultQueueCapacity = 256
	defaultDecodeWorkers = 2
	defaultTickInterval  = 25 * time.Millisecond
)

// Pipeline owns the running chain. Create with New, drive with Run.
type Pipeline struct {
	cfg     Config
	dstats  DecodeStats
	decoder *parse.Decoder
	agg     *session.Aggregator
}

func New(cfg Config) *Pipeline {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = defaultQueueCapacity
	}
	if cfg.DecodeWorkers <= 0 {
		cfg.DecodeWorkers = defaultDecodeWorkers
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	dstats := cfg.DecodeStats
	if dstats == nil {
		dstats = noopDecodeStats{}
	}
	return &Pipeline{
		cfg:     cfg,
		dstats:  dstats,
		decoder: parse.NewDecoder(parse.NewRegistry()),
		agg:     session.NewAggregator(cfg.Hub, cfg.Aggregator),
	}
}

// Run blocks until the source stops (context cancellation or a fatal
// transport error) and the chain has drained. The returned error is the
// source's, with context.Canceled mapped to nil.
func (p *Pipeline) Run(ctx context.Context) error {
	queue := ingest.NewQueue(p.cfg.QueueCapacity, p.cfg.IngestStats)
	decoded := make(chan *telem.Packet, p.cfg.QueueCapacity)

	// Stage 1: source. Closing the queue after the source returns starts
	// the drain cascade.
	srcErr := make(chan error, 1)
	go func() {
		err := p.cfg.Source.Run(ctx, queue.Push)
		queue.Close()
		srcErr <- err
	}()

	// Stage 2: decode pool.
	var wg sync.WaitGroup
	for i := 0; i < p.cfg.DecodeWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.decodeLoop(queue, decoded)
		}()
	}
	go func() {
		wg.Wait()
		close(decoded)
	}()

	// Stage 3: aggregation, single owner, in this goroutine. Stage 4 (the
	// hub) closes only after the aggregator has flushed its final
	// snapshot, so consumers see a complete stream.
	ticker := time.NewTicker(p.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case pkt, ok := <-decoded:
			if !ok {
				p.agg.Close()
				p.cfg.Hub.Close()
				err := <-srcErr
				if errors.Is(err, context.Canceled) {
					err = nil
				}
				if err != nil {
					monitoring.Logf("pipeline: source failed: %v", err)
				}
				return err
			}
			p.agg.Apply(pkt)
		case <-ticker.C:
			p.agg.Tick(time.Now())
		}
	}
}

func (p *Pipeline) decodeLoop(queue *ingest.Queue, decoded chan<- *telem.Packet) {
	for raw := range queue.Chan() {
		pkt, err := p.decoder.Decode(raw)
		if err != nil {
			p.dstats.AddDecodeError(parse.ReasonOf(err))
			monitoring.Debugf("decode: %v", err)
			continue
		}
		if pkt.Payload == nil {
			p.dstats.AddIgnored()
		} else {
			p.dstats.AddDecoded(pkt.Header.PacketID)
		}
		decoded <- pkt
	}
}
