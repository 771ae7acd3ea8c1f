// Package config loads the optional engine configuration file for the
// sqlitekv CLI. The file carries only passthrough options for the
// embedded engine; none of them change store semantics.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/picani/sqlitekv/internal/store"
)

// Config mirrors the YAML configuration file.
type Config struct {
	// BusyTimeoutMS is the SQLite busy timeout in milliseconds.
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`

	// JournalMode is the SQLite journal mode.
	JournalMode string `yaml:"journal_mode"`

	// Synchronous is the SQLite synchronous level.
	Synchronous string `yaml:"synchronous"`
}

// Allowed pragma values, per the SQLite documentation.
var (
	validJournalModes = []string{"DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF"}
	validSynchronous  = []string{"OFF", "NORMAL", "FULL", "EXTRA"}
)

// Default returns the configuration matching store.DefaultOptions.
func Default() Config {
	return Config{
		BusyTimeoutMS: 5000,
		JournalMode:   "WAL",
		Synchronous:   "NORMAL",
	}
}

// Load reads and parses a configuration YAML file. Unset fields keep
// their defaults. Returns an error if the file doesn't exist, is
// malformed, contains unknown fields (typos), or holds an invalid
// pragma value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "journal_mod:" vs "journal_mode:")
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// StoreOptions converts the configuration into engine options.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		BusyTimeout: time.Duration(c.BusyTimeoutMS) * time.Millisecond,
		JournalMode: c.JournalMode,
		Synchronous: c.Synchronous,
	}
}

// validate checks pragma values against the engine's accepted sets.
func validate(c *Config) error {
	if c.BusyTimeoutMS < 0 {
		return fmt.Errorf("busy_timeout_ms must be non-negative, got %d", c.BusyTimeoutMS)
	}
	if !contains(validJournalModes, c.JournalMode) {
		return fmt.Errorf("journal_mode %q: must be one of %v", c.JournalMode, validJournalModes)
	}
	if !contains(validSynchronous, c.Synchronous) {
		return fmt.Errorf("synchronous %q: must be one of %v", c.Synchronous, validSynchronous)
	}
	return nil
}

func contains(valid []string, v string) bool {
	for _, s := range valid {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
