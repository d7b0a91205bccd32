package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks a resolved configuration.
//
// Ensures:
//   - server.listen_addr is non-empty
//   - store.adapter is a known adapter
//   - the mongo adapter has a connection string
//   - the fs adapter has a directory
//   - every duration field parses
func Validate(cfg FileConfig) error {
	if cfg.Server.ListenAddr == "" {
		return errors.New("server.listen_addr must be set")
	}

	switch cfg.Store.Adapter {
	case "mongo":
		if cfg.Store.URI == "" {
			return errors.New("MONGO_URI must be set")
		}
	case "fs":
		if cfg.Store.URI == "" {
			return errors.New("store.uri must name a directory for the fs adapter")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store.adapter %q", cfg.Store.Adapter)
	}

	durations := []struct {
		field string
		value string
	}{
		{"server.shutdown_timeout", cfg.Server.ShutdownTimeout},
		{"store.connect_timeout", cfg.Store.ConnectTimeout},
		{"store.operation_timeout", cfg.Store.OperationTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.field, d.value, err)
		}
		if v < 0 {
			return fmt.Errorf("invalid %s %q: must not be negative", d.field, d.value)
		}
	}

	return nil
}
