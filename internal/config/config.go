// Package config holds the application configuration: one struct,
// decodable from YAML or TOML, with defaults that make the zero-config
// case work.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Server    ServerConf    `yaml:"server" toml:"server"`
	Cache     CacheConf     `yaml:"cache" toml:"cache"`
	History   HistoryConf   `yaml:"history" toml:"history"`
	Detection DetectionConf `yaml:"detection" toml:"detection"`
	Source    SourceConf    `yaml:"source" toml:"source"`
}

// ServerConf configures the HTTP API server.
type ServerConf struct {
	// Addr is the listen address, host optional.
	Addr string `yaml:"addr" toml:"addr"`

	// CORSOrigins lists allowed cross-origin callers. "*" allows all.
	CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// CacheConf configures the analysis/render cache.
type CacheConf struct {
	// Backend is "file", "redis" or "none".
	Backend string `yaml:"backend" toml:"backend"`

	// Dir is the file cache directory. Empty selects the per-user
	// default.
	Dir string `yaml:"dir" toml:"dir"`

	// TTL is how long cached entries stay valid. Zero keeps them
	// forever.
	TTL Duration `yaml:"ttl" toml:"ttl"`

	// Scope prefixes every cache key, isolating environments that share
	// a backend.
	Scope string `yaml:"scope" toml:"scope"`

	Redis RedisConf `yaml:"redis" toml:"redis"`
}

// RedisConf locates a Redis cache backend.
type RedisConf struct {
	Addr     string `yaml:"addr" toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db" toml:"db"`
}

// HistoryConf configures detection-event history.
type HistoryConf struct {
	// Backend is "memory" or "mongo".
	Backend string `yaml:"backend" toml:"backend"`

	// Capacity bounds the memory backend. Zero selects the default.
	Capacity int `yaml:"capacity" toml:"capacity"`

	Mongo MongoConf `yaml:"mongo" toml:"mongo"`
}

// MongoConf locates a MongoDB history backend.
type MongoConf struct {
	URI        string `yaml:"uri" toml:"uri"`
	Database   string `yaml:"database" toml:"database"`
	Collection string `yaml:"collection" toml:"collection"`
}

// DetectionConf toggles the analysis passes.
type DetectionConf struct {
	// Banker enables safe-state prediction.
	Banker bool `yaml:"banker" toml:"banker"`

	// WFG enables wait-for-graph cycle detection.
	WFG bool `yaml:"wfg" toml:"wfg"`

	// RecoveryPolicy names the victim selection policy. Only
	// "min_impact" exists today.
	RecoveryPolicy string `yaml:"recovery_policy" toml:"recovery_policy"`
}

// SourceConf configures the live snapshot feed.
type SourceConf struct {
	// Watch is a snapshot file to tail for live updates. Empty disables
	// the feed.
	Watch string `yaml:"watch" toml:"watch"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConf{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Cache: CacheConf{
			Backend: "file",
			TTL:     Duration(24 * time.Hour),
		},
		History: HistoryConf{
			Backend:  "memory",
			Capacity: 1000,
		},
		Detection: DetectionConf{
			Banker:         true,
			WFG:            true,
			RecoveryPolicy: "min_impact",
		},
	}
}

// Duration decodes "30s"-style strings from both YAML and TOML.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalText implements encoding.TextUnmarshaler, which covers TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalYAML decodes the YAML scalar form.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML encodes the scalar form.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}
