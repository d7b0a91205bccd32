package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Override adjusts a configuration after file and environment are applied,
// typically from command-line flags.
type Override func(*FileConfig)

// Load resolves the configuration: defaults, then the YAML file at path (if
// path is non-empty), then .env, then environment variables, then overrides.
// The result is validated.
func Load(path string, overrides ...Override) (FileConfig, error) {
	cfg := Default()

	if path != "" {
		// Clean the path to prevent directory traversal attacks
		cleanPath := filepath.Clean(path)
		data, err := os.ReadFile(cleanPath) // #nosec G304 - config path comes from the operator
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := LoadDotEnv(); err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	for _, o := range overrides {
		o(&cfg)
	}
	applyMongoURIFallback(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv populates the environment from the given files, ".env" by
// default. Missing files are ignored; variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
