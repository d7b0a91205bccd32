// Package config loads the itemstore server configuration from an optional
// YAML file, a .env file and the process environment, in that order.
package config

import "time"

// Defaults.
const (
	DefaultListenAddr      = "127.0.0.1:8080"
	DefaultAdapter         = "mongo"
	DefaultDatabase        = "rust_api_db"
	DefaultCollection      = "items"
	DefaultShutdownTimeout = "10s"
	DefaultConnectTimeout  = "10s"
)

// ServerSection contains HTTP server configuration.
type ServerSection struct {
	ListenAddr string `yaml:"listen_addr"`

	// ShutdownTimeout bounds graceful shutdown. Go duration format: "5s", "1m".
	ShutdownTimeout string `yaml:"shutdown_timeout"`

	// Debug exposes GET /debug/state.
	Debug bool `yaml:"debug"`
}

// StoreSection contains persistence configuration.
type StoreSection struct {
	// Adapter is one of "mongo", "fs", "memory".
	Adapter string `yaml:"adapter"`

	// URI is the mongo connection string, or the directory for "fs".
	// For mongo it is normally supplied through MONGO_URI rather than the file.
	URI string `yaml:"uri"`

	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`

	ConnectTimeout string `yaml:"connect_timeout"`

	// OperationTimeout bounds each persistence call. Empty means no bound.
	OperationTimeout string `yaml:"operation_timeout"`

	// Watch reloads the fs adapter's file on external changes.
	Watch bool `yaml:"watch"`

	// ReadOnly rejects writes on the fs adapter.
	ReadOnly bool `yaml:"read_only"`
}

// FileConfig represents an itemstore configuration file.
type FileConfig struct {
	// Version is the config file format version (optional, currently always 1)
	Version int `yaml:"version,omitempty"`

	Server ServerSection `yaml:"server"`
	Store  StoreSection  `yaml:"store"`
}

// Default returns the configuration used when no file is given.
func Default() FileConfig {
	return FileConfig{
		Version: 1,
		Server: ServerSection{
			ListenAddr:      DefaultListenAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Store: StoreSection{
			Adapter:        DefaultAdapter,
			Database:       DefaultDatabase,
			Collection:     DefaultCollection,
			ConnectTimeout: DefaultConnectTimeout,
		},
	}
}

// ShutdownTimeout returns the parsed server.shutdown_timeout.
// Call Validate first; unparsable values yield zero.
func (c FileConfig) ShutdownTimeout() time.Duration {
	return parseOrZero(c.Server.ShutdownTimeout)
}

// ConnectTimeout returns the parsed store.connect_timeout.
func (c FileConfig) ConnectTimeout() time.Duration {
	return parseOrZero(c.Store.ConnectTimeout)
}

// OperationTimeout returns the parsed store.operation_timeout.
func (c FileConfig) OperationTimeout() time.Duration {
	return parseOrZero(c.Store.OperationTimeout)
}

func parseOrZero(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
