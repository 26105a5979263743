package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

var validSnapshotFormats = map[string]bool{
	"json": true,
	"csv":  true,
}

// Validate checks the configuration for invalid values. It expects defaults
// to have been applied already.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Engine.AuditBuffer < 0 {
		return fmt.Errorf("engine.audit_buffer must not be negative, got %d", cfg.Engine.AuditBuffer)
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		return fmt.Errorf("telemetry.logging.level must be one of debug, info, warn, error, got %q", cfg.Telemetry.Logging.Level)
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		return fmt.Errorf("telemetry.logging.format must be json or text, got %q", cfg.Telemetry.Logging.Format)
	}

	if !validSnapshotFormats[cfg.Audit.SnapshotFormat] {
		return fmt.Errorf("audit.snapshot_format must be json or csv, got %q", cfg.Audit.SnapshotFormat)
	}
	if cfg.Audit.SnapshotSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Audit.SnapshotSchedule); err != nil {
			return fmt.Errorf("audit.snapshot_schedule is not a valid cron expression: %w", err)
		}
		if cfg.Audit.SnapshotPath == "" {
			return fmt.Errorf("audit.snapshot_path is required when audit.snapshot_schedule is set")
		}
	}

	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.ListenAddress == "" {
		return fmt.Errorf("telemetry.metrics.listen_address is required when metrics are enabled")
	}

	return nil
}
