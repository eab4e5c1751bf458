package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hawkeye-data/grid.report/internal/config"
	"github.com/hawkeye-data/grid.report/internal/db"
	"github.com/hawkeye-data/grid.report/internal/metrics"
	"github.com/hawkeye-data/grid.report/internal/monitoring"
	"github.com/hawkeye-data/grid.report/internal/telem"
	"github.com/hawkeye-data/grid.report/internal/telem/hub"
	"github.com/hawkeye-data/grid.report/internal/telem/ingest"
	"github.com/hawkeye-data/grid.report/internal/telem/pipeline"
	"github.com/hawkeye-data/grid.report/internal/telem/session"
	"github.com/hawkeye-data/grid.report/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to JSON config file")
	listen      = flag.String("listen", "", "HTTP listen address (overrides config)")
	udpAddr     = flag.String("udp-addr", "", "UDP listen address (overrides config)")
	captureFile = flag.String("capture", "", "Replay a capture file instead of listening on UDP")
	speed       = flag.Float64("speed", 1.0, "Capture playback speed factor (0 = as fast as possible)")
	loop        = flag.Bool("loop", false, "Loop capture playback")
	pcapFile    = flag.String("pcap", "", "Replay a PCAP file instead of listening on UDP (requires a -tags=pcap build)")
	pcapPort    = flag.Int("pcap-port", 20777, "UDP port filter for PCAP replay")
	dbFile      = flag.String("db", "", "SQLite database path (overrides config; empty disables persistence)")
	debugFlag   = flag.Bool("debug", false, "Verbose logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// pcapSource adapts PCAP replay to the datagram source interface.
type pcapSource struct {
	file  string
	port  int
	stats ingest.Stats
}

func (p *pcapSource) Run(ctx context.Context, emit func(telem.RawDatagram)) error {
	return ingest.ReplayPCAPFile(ctx, p.file, p.port, p.stats, emit)
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("telemetryd %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	log.Printf("telemetryd %s starting", version.Version)

	cfg := config.EmptyTelemetryConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadTelemetryConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	if *debugFlag || cfg.GetDebug() {
		monitoring.SetDebug(true)
	}

	httpAddr := cfg.GetHTTPAddress()
	if *listen != "" {
		httpAddr = *listen
	}
	dbPath := cfg.GetDatabasePath()
	if *dbFile != "" {
		dbPath = *dbFile
	}

	m := metrics.New(nil)
	h := hub.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the datagram source: live socket by default, capture or PCAP
	// playback when asked for.
	var source ingest.Source
	switch {
	case *captureFile != "" && *pcapFile != "":
		log.Fatal("-capture and -pcap are mutually exclusive")
	case *captureFile != "":
		source = &ingest.CaptureSource{
			Path:  *captureFile,
			Speed: *speed,
			Loop:  *loop,
			Stats: m.Ingest(),
		}
		log.Printf("Replaying capture file %s (speed %.2g, loop %v)", *captureFile, *speed, *loop)
	case *pcapFile != "":
		source = &pcapSource{file: *pcapFile, port: *pcapPort, stats: m.Ingest()}
		log.Printf("Replaying PCAP file %s (udp port %d)", *pcapFile, *pcapPort)
	default:
		listenerCfg := ingest.UDPListenerConfig{
			Address:      cfg.GetListenAddress(),
			RcvBuf:       cfg.GetReceiveBufferBytes(),
			ReadDeadline: cfg.GetReadDeadline(),
			Stats:        m.Ingest(),
		}
		if *udpAddr != "" {
			listenerCfg.Address = *udpAddr
		}
		if fwdAddr := cfg.GetForwardAddress(); fwdAddr != "" {
			fwd, err := ingest.NewForwarder(fwdAddr, cfg.GetForwardPort(), m.Ingest())
			if err != nil {
				log.Fatalf("Failed to set up forwarder: %v", err)
			}
			defer fwd.Close()
			fwd.Start(ctx)
			listenerCfg.Forwarder = fwd
		}
		source = ingest.NewUDPListener(listenerCfg)
		log.Printf("Listening for telemetry on udp %s", listenerCfg.Address)
	}

	var wg sync.WaitGroup

	// Live view consumer: drop-oldest, a stale frame is worthless once a
	// fresher one exists.
	live := newLiveBuffer()
	liveSub := h.Subscribe(hub.SubscriptionConfig{
		Name:      "live",
		Policy:    hub.DropOldest,
		QueueSize: cfg.GetLiveQueueSize(),
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		live.consume(liveSub)
	}()

	// Persistence consumer: blocks briefly rather than dropping, losing a
	// lap row is worse than a short stall on the hub side.
	if dbPath != "" {
		tdb, err := db.NewDB(dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer tdb.Close()
		if err := tdb.MigrateUp(); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Printf("Persisting telemetry to %s", dbPath)

		dbSub := h.Subscribe(hub.SubscriptionConfig{
			Name:         "sqlite",
			Policy:       hub.Block,
			QueueSize:    cfg.GetPersistQueueSize(),
			BlockTimeout: cfg.GetPersistBlockTimeout(),
		})
		writer := db.NewWriter(tdb, dbSub, 0)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := writer.Run(context.Background()); err != nil {
				log.Printf("DB writer error: %v", err)
			}
			log.Print("DB writer routine terminated")
		}()

		live.sessions = tdb
	}

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"status": "ok", "service": "telemetry", "version": "%s", "timestamp": "%s"}`,
				version.Version, time.Now().UTC().Format(time.RFC3339))
		})
		live.attachRoutes(mux)

		server := &http.Server{
			Addr:    httpAddr,
			Handler: mux,
		}

		go func() {
			log.Printf("Starting HTTP server on %s", httpAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start HTTP server: %v", err)
			}
		}()

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
		log.Print("HTTP server routine stopped")
	}()

	// The pipeline owns the hub's lifecycle: when the source stops it
	// flushes final snapshots and closes the hub, which unwinds every
	// consumer above.
	pipe := pipeline.New(pipeline.Config{
		Source:        source,
		Hub:           h,
		QueueCapacity: cfg.GetQueueCapacity(),
		DecodeWorkers: cfg.GetDecodeWorkers(),
		TickInterval:  cfg.GetTickInterval(),
		Aggregator: session.Config{
			IdleTimeout:      cfg.GetIdleTimeout(),
			SnapshotInterval: cfg.GetSnapshotInterval(),
			Stats:            m.Session(),
		},
		IngestStats: m.Ingest(),
		DecodeStats: m.Decode(),
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := pipe.Run(ctx); err != nil {
			log.Printf("Pipeline error: %v", err)
		}
		log.Print("Pipeline routine terminated")
		// A finished playback or a fatal transport error also ends the
		// process, not just SIGINT.
		stop()
	}()

	wg.Wait()
	log.Print("Graceful shutdown complete")
}
