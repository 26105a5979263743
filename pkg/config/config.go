package config

// Config is the root configuration structure.
type Config struct {
	// Engine contains evaluation engine toggles.
	Engine EngineConfig `yaml:"engine"`

	// Audit contains audit log snapshot settings.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EngineConfig contains evaluation engine toggles.
type EngineConfig struct {
	// LogEvents controls whether validations append audit events.
	// Default: true. A pointer distinguishes unset from explicit false.
	LogEvents *bool `yaml:"log_events"`

	// AuditBuffer pre-sizes the audit log.
	// Default: 64.
	AuditBuffer int `yaml:"audit_buffer"`
}

// AuditConfig contains audit snapshot settings. Snapshots export the log on
// a schedule; they never prune it.
type AuditConfig struct {
	// SnapshotSchedule is a standard cron expression (e.g. "0 3 * * *").
	// Empty disables scheduled snapshots.
	SnapshotSchedule string `yaml:"snapshot_schedule"`

	// SnapshotPath is the file the snapshot is written to. The file is
	// replaced wholesale on each run.
	SnapshotPath string `yaml:"snapshot_path"`

	// SnapshotFormat selects the export format: "json" or "csv".
	// Default: "json".
	SnapshotFormat string `yaml:"snapshot_format"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info".
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json".
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`

	// RedactAttributes enables applicant-data redaction in log fields.
	// Default: true.
	RedactAttributes *bool `yaml:"redact_attributes"`

	// SensitiveKeys extends the set of attribute key names whose values are
	// masked in logs.
	SensitiveKeys []string `yaml:"sensitive_keys"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the metrics endpoint.
	// Default: "127.0.0.1:9190".
	ListenAddress string `yaml:"listen_address"`

	// Namespace prefixes all metric names.
	// Default: "verdict".
	Namespace string `yaml:"namespace"`
}
