package config

import (
	"encoding/json"
	"os"
	"time"

	"offstash/internal/flagx"
	"offstash/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Booleans are pointers so
// an absent key keeps the default instead of forcing false. After
// parsing, values are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN         string         `json:"database_dsn"`
	SyncEndpoint        string         `json:"sync_endpoint"`
	Codec               string         `json:"codec"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SendTimeout         timex.Duration `json:"send_timeout"`
	SendBackoff         timex.Duration `json:"send_backoff"`
	SendRetries         *uint64        `json:"send_retries"`
	CompressOnWrite     *bool          `json:"compress_on_write"`
	EncryptAtRest       *bool          `json:"encrypt_at_rest"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; absent keys keep
//     whatever value the Config already holds.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SyncEndpoint != "" {
		cfg.SyncEndpoint = jc.SyncEndpoint
	}
	if jc.Codec != "" {
		cfg.Codec = jc.Codec
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.SendTimeout.Duration != 0 {
		cfg.SendTimeout = time.Duration(jc.SendTimeout.Duration)
	}
	if jc.SendBackoff.Duration != 0 {
		cfg.SendBackoff = time.Duration(jc.SendBackoff.Duration)
	}
	if jc.SendRetries != nil {
		cfg.SendRetries = *jc.SendRetries
	}
	if jc.CompressOnWrite != nil {
		cfg.CompressOnWrite = *jc.CompressOnWrite
	}
	if jc.EncryptAtRest != nil {
		cfg.EncryptAtRest = *jc.EncryptAtRest
	}
}
