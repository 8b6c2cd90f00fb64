package config

import (
	"fmt"
	"strings"
)

// Validate checks cfg for values that cannot work: unknown backends,
// missing endpoints for selected backends, nonsensical bounds. All
// problems are reported at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}

	switch cfg.Cache.Backend {
	case "file", "none":
	case "redis":
		if cfg.Cache.Redis.Addr == "" {
			errs = append(errs, "cache.redis.addr is required for the redis backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("cache.backend %q unknown (want file, redis or none)", cfg.Cache.Backend))
	}
	if cfg.Cache.TTL < 0 {
		errs = append(errs, "cache.ttl must not be negative")
	}

	switch cfg.History.Backend {
	case "memory":
	case "mongo":
		if cfg.History.Mongo.URI == "" {
			errs = append(errs, "history.mongo.uri is required for the mongo backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("history.backend %q unknown (want memory or mongo)", cfg.History.Backend))
	}
	if cfg.History.Capacity < 0 {
		errs = append(errs, "history.capacity must not be negative")
	}

	if p := cfg.Detection.RecoveryPolicy; p != "" && p != "min_impact" {
		errs = append(errs, fmt.Sprintf("detection.recovery_policy %q unknown (want min_impact)", p))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
