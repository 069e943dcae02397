package config

import "time"

// Config holds runtime settings for the offstash CLI.
//
// Fields:
//   - DatabaseDSN: SQLite DSN of the local store.
//   - SyncEndpoint: URL the sync queue delivers pending items to.
//   - OnlineCheckInterval: how often the client probes endpoint reachability.
//   - CompressOnWrite: whether payloads are compressed before storing.
//   - Codec: compression codec name ("zstd" or "lz4").
//   - EncryptAtRest: whether stored payloads are sealed with a passphrase key.
//   - SendTimeout: per-request timeout for sync deliveries.
//   - SendRetries: transient delivery retry attempts (0 disables retrying).
//   - SendBackoff: base backoff between delivery retries.
//
// Units: interval and timeout fields are time.Duration (e.g., 3*time.Second).
type Config struct {
	DatabaseDSN         string
	SyncEndpoint        string
	Codec               string
	OnlineCheckInterval time.Duration
	SendTimeout         time.Duration
	SendBackoff         time.Duration
	SendRetries         uint64
	CompressOnWrite     bool
	EncryptAtRest       bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "offstash.db"
	c.SyncEndpoint = "http://127.0.0.1:8080/api/sync"
	c.Codec = "zstd"
	c.OnlineCheckInterval = 3 * time.Second
	c.SendTimeout = 30 * time.Second
	c.SendBackoff = 500 * time.Millisecond
	c.SendRetries = 3
	c.CompressOnWrite = true
	c.EncryptAtRest = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
