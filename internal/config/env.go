package config

import "os"

// Environment variables read by applyEnvOverrides.
const (
	EnvMongoURI   = "MONGO_URI"
	EnvListenAddr = "ITEMSTORE_LISTEN_ADDR"
	EnvAdapter    = "ITEMSTORE_ADAPTER"
	EnvStoreURI   = "ITEMSTORE_STORE_URI"
)

// applyEnvOverrides overrides config values with environment variables if set.
// MONGO_URI only applies to the mongo adapter; ITEMSTORE_STORE_URI applies to any.
func applyEnvOverrides(cfg *FileConfig) {
	if addr := os.Getenv(EnvListenAddr); addr != "" {
		cfg.Server.ListenAddr = addr
	}
	if adapter := os.Getenv(EnvAdapter); adapter != "" {
		cfg.Store.Adapter = adapter
	}
	if uri := os.Getenv(EnvMongoURI); uri != "" && cfg.Store.Adapter == "mongo" {
		cfg.Store.URI = uri
	}
	if uri := os.Getenv(EnvStoreURI); uri != "" {
		cfg.Store.URI = uri
	}
}

// applyMongoURIFallback supplies MONGO_URI once the adapter is final, for a
// mongo store left without a connection string by the earlier steps.
func applyMongoURIFallback(cfg *FileConfig) {
	if cfg.Store.Adapter != "mongo" || cfg.Store.URI != "" {
		return
	}
	cfg.Store.URI = os.Getenv(EnvMongoURI)
}
