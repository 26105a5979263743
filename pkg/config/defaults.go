package config

// Default values applied to unset fields.
const (
	DefaultAuditBuffer    = 64
	DefaultSnapshotFormat = "json"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultMetricsAddress = "127.0.0.1:9190"
	DefaultNamespace      = "verdict"
)

// ApplyDefaults fills unset fields with their documented defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Engine.LogEvents == nil {
		t := true
		cfg.Engine.LogEvents = &t
	}
	if cfg.Engine.AuditBuffer == 0 {
		cfg.Engine.AuditBuffer = DefaultAuditBuffer
	}

	if cfg.Audit.SnapshotFormat == "" {
		cfg.Audit.SnapshotFormat = DefaultSnapshotFormat
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Logging.RedactAttributes == nil {
		t := true
		cfg.Telemetry.Logging.RedactAttributes = &t
	}

	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsAddress
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultNamespace
	}
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
