package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TelemetryConfig is the root configuration for the telemetry daemon.
// All fields are pointers so a partial JSON file overrides only what it
// names; the Get* accessors supply defaults for everything else.
type TelemetryConfig struct {
	// Receiver params
	ListenAddress      *string `json:"listen_address,omitempty"`
	ReceiveBufferBytes *int    `json:"receive_buffer_bytes,omitempty"`
	ReadDeadline       *string `json:"read_deadline,omitempty"` // duration string like "100ms"
	QueueCapacity      *int    `json:"queue_capacity,omitempty"`

	// Redirect params: mirror raw datagrams to a second tool
	ForwardAddress *string `json:"forward_address,omitempty"`
	ForwardPort    *int    `json:"forward_port,omitempty"`

	// Decode params
	DecodeWorkers *int `json:"decode_workers,omitempty"`

	// Aggregator params
	IdleTimeout      *string `json:"idle_timeout,omitempty"`      // duration string like "5s"
	SnapshotInterval *string `json:"snapshot_interval,omitempty"` // duration string like "50ms"
	TickInterval     *string `json:"tick_interval,omitempty"`

	// Consumer params
	LiveQueueSize       *int    `json:"live_queue_size,omitempty"`
	PersistQueueSize    *int    `json:"persist_queue_size,omitempty"`
	PersistBlockTimeout *string `json:"persist_block_timeout,omitempty"`

	// Sinks and surfaces
	DatabasePath *string `json:"database_path,omitempty"`
	HTTPAddress  *string `json:"http_address,omitempty"`

	Debug *bool `json:"debug,omitempty"`
}

// EmptyTelemetryConfig returns a config with all fields unset.
func EmptyTelemetryConfig() *TelemetryConfig {
	return &TelemetryConfig{}
}

// LoadTelemetryConfig loads a TelemetryConfig from a JSON file. Fields
// omitted from the file keep their defaults, so partial configs are safe.
func LoadTelemetryConfig(path string) (*TelemetryConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTelemetryConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *TelemetryConfig) Validate() error {
	for name, v := range map[string]*string{
		"read_deadline":         c.ReadDeadline,
		"idle_timeout":          c.IdleTimeout,
		"snapshot_interval":     c.SnapshotInterval,
		"tick_interval":         c.TickInterval,
		"persist_block_timeout": c.PersistBlockTimeout,
	} {
		if v != nil && *v != "" {
			if _, err := time.ParseDuration(*v); err != nil {
				return fmt.Errorf("invalid %s '%s': %w", name, *v, err)
			}
		}
	}

	if c.ForwardPort != nil {
		if *c.ForwardPort < 1 || *c.ForwardPort > 65535 {
			return fmt.Errorf("forward_port must be 1-65535, got %d", *c.ForwardPort)
		}
	}
	if c.QueueCapacity != nil && *c.QueueCapacity < 1 {
		return fmt.Errorf("queue_capacity must be positive, got %d", *c.QueueCapacity)
	}
	if c.DecodeWorkers != nil && *c.DecodeWorkers < 1 {
		return fmt.Errorf("decode_workers must be positive, got %d", *c.DecodeWorkers)
	}
	return nil
}

func (c *TelemetryConfig) duration(v *string, def time.Duration) time.Duration {
	if v == nil || *v == "" {
		return def
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return def
	}
	return d
}

// GetListenAddress returns the UDP listen address or the default.
func (c *TelemetryConfig) GetListenAddress() string {
	if c.ListenAddress == nil {
		return ":20777"
	}
	return *c.ListenAddress
}

// GetReceiveBufferBytes returns the kernel receive buffer size or the default.
func (c *TelemetryConfig) GetReceiveBufferBytes() int {
	if c.ReceiveBufferBytes == nil {
		return 1 << 20
	}
	return *c.ReceiveBufferBytes
}

// GetReadDeadline returns the socket read deadline or the default.
func (c *TelemetryConfig) GetReadDeadline() time.Duration {
	return c.duration(c.ReadDeadline, 100*time.Millisecond)
}

// GetQueueCapacity returns the ingress queue bound or the default.
func (c *TelemetryConfig) GetQueueCapacity() int {
	if c.QueueCapacity == nil {
		return 256
	}
	return *c.QueueCapacity
}

// GetForwardAddress returns the redirect target host, empty when disabled.
func (c *TelemetryConfig) GetForwardAddress() string {
	if c.ForwardAddress == nil {
		return ""
	}
	return *c.ForwardAddress
}

// GetForwardPort returns the redirect target port or the default.
func (c *TelemetryConfig) GetForwardPort() int {
	if c.ForwardPort == nil {
		return 20777
	}
	return *c.ForwardPort
}

// GetDecodeWorkers returns the decode pool size or the default.
func (c *TelemetryConfig) GetDecodeWorkers() int {
	if c.DecodeWorkers == nil {
		return 2
	}
	return *c.DecodeWorkers
}

// GetIdleTimeout returns the session idle timeout or the default.
func (c *TelemetryConfig) GetIdleTimeout() time.Duration {
	return c.duration(c.IdleTimeout, 5*time.Second)
}

// GetSnapshotInterval returns the snapshot coalescing interval or the default.
func (c *TelemetryConfig) GetSnapshotInterval() time.Duration {
	return c.duration(c.SnapshotInterval, 50*time.Millisecond)
}

// GetTickInterval returns the aggregator tick cadence or the default.
func (c *TelemetryConfig) GetTickInterval() time.Duration {
	return c.duration(c.TickInterval, 25*time.Millisecond)
}

// GetLiveQueueSize returns the live consumer queue bound or the default.
func (c *TelemetryConfig) GetLiveQueueSize() int {
	if c.LiveQueueSize == nil {
		return 16
	}
	return *c.LiveQueueSize
}

// GetPersistQueueSize returns the persistence consumer queue bound or the default.
func (c *TelemetryConfig) GetPersistQueueSize() int {
	if c.PersistQueueSize == nil {
		return 256
	}
	return *c.PersistQueueSize
}

// GetPersistBlockTimeout returns the persistence consumer's bounded wait.
func (c *TelemetryConfig) GetPersistBlockTimeout() time.Duration {
	return c.duration(c.PersistBlockTimeout, 50*time.Millisecond)
}

// GetDatabasePath returns the sqlite sink path, empty when persistence is
// disabled.
func (c *TelemetryConfig) GetDatabasePath() string {
	if c.DatabasePath == nil {
		return ""
	}
	return *c.DatabasePath
}

// GetHTTPAddress returns the debug/live HTTP listen address or the default.
func (c *TelemetryConfig) GetHTTPAddress() string {
	if c.HTTPAddress == nil {
		return ":8077"
	}
	return *c.HTTPAddress
}

// GetDebug returns whether per-datagram debug logging is enabled.
func (c *TelemetryConfig) GetDebug() bool {
	if c.Debug == nil {
		return false
	}
	return *c.Debug
}
