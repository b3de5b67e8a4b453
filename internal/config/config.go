// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Layered loading lives in Load: defaults, optional file, env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AuditQueueSize bounds the in-memory registration audit queue.
	AuditQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of audit workers.
	WorkerCount int `koanf:"worker_count"`

	// JournalSize caps the number of retained audit records.
	JournalSize int `koanf:"journal_size"`

	// SeedFile optionally points at a YAML activity catalog that replaces
	// the built-in seed data.
	SeedFile string `koanf:"seed_file"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8080",
		AuditQueueSize: 1024,
		WorkerCount:    2,
		JournalSize:    1000,
	}
}
