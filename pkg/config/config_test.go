package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Engine.LogEvents == nil || !*cfg.Engine.LogEvents {
		t.Error("log_events should default to true")
	}
	if cfg.Engine.AuditBuffer != DefaultAuditBuffer {
		t.Errorf("audit_buffer = %d, want %d", cfg.Engine.AuditBuffer, DefaultAuditBuffer)
	}
	if cfg.Audit.SnapshotFormat != DefaultSnapshotFormat {
		t.Errorf("snapshot_format = %q", cfg.Audit.SnapshotFormat)
	}
	if cfg.Telemetry.Logging.Level != DefaultLogLevel {
		t.Errorf("level = %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.RedactAttributes == nil || !*cfg.Telemetry.Logging.RedactAttributes {
		t.Error("redact_attributes should default to true")
	}
	if cfg.Telemetry.Metrics.ListenAddress != DefaultMetricsAddress {
		t.Errorf("listen_address = %q", cfg.Telemetry.Metrics.ListenAddress)
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	f := false
	cfg := &Config{}
	cfg.Engine.LogEvents = &f
	cfg.Telemetry.Logging.Level = "debug"
	ApplyDefaults(cfg)

	if *cfg.Engine.LogEvents {
		t.Error("explicit false overwritten by default")
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "negative audit buffer",
			mutate:  func(cfg *Config) { cfg.Engine.AuditBuffer = -1 },
			wantErr: "audit_buffer",
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *Config) { cfg.Telemetry.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(cfg *Config) { cfg.Telemetry.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "bad snapshot format",
			mutate:  func(cfg *Config) { cfg.Audit.SnapshotFormat = "parquet" },
			wantErr: "snapshot_format",
		},
		{
			name:    "bad cron schedule",
			mutate:  func(cfg *Config) { cfg.Audit.SnapshotSchedule = "whenever"; cfg.Audit.SnapshotPath = "a.json" },
			wantErr: "cron",
		},
		{
			name:    "schedule without path",
			mutate:  func(cfg *Config) { cfg.Audit.SnapshotSchedule = "0 3 * * *" },
			wantErr: "snapshot_path",
		},
		{
			name: "metrics enabled without address",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Metrics.Enabled = true
				cfg.Telemetry.Metrics.ListenAddress = ""
			},
			wantErr: "listen_address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want message containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	content := `
engine:
  audit_buffer: 128
audit:
  snapshot_schedule: "0 3 * * *"
  snapshot_path: /tmp/audit.json
  snapshot_format: csv
telemetry:
  logging:
    level: debug
    format: text
  metrics:
    enabled: true
    listen_address: "127.0.0.1:9999"
`
	path := writeConfig(t, content)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Engine.AuditBuffer != 128 {
		t.Errorf("audit_buffer = %d", cfg.Engine.AuditBuffer)
	}
	if cfg.Audit.SnapshotFormat != "csv" {
		t.Errorf("snapshot_format = %q", cfg.Audit.SnapshotFormat)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Telemetry.Logging)
	}
	if cfg.Telemetry.Metrics.ListenAddress != "127.0.0.1:9999" {
		t.Errorf("listen_address = %q", cfg.Telemetry.Metrics.ListenAddress)
	}
	// Unset fields still get defaults.
	if cfg.Engine.LogEvents == nil || !*cfg.Engine.LogEvents {
		t.Error("log_events default not applied")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "telemetry:\n  logging:\n    level: loud\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("invalid config should fail to load")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "telemetry:\n  logging:\n    level: info\n")

	t.Setenv("VERDICT_LOG_LEVEL", "debug")
	t.Setenv("VERDICT_ENGINE_LOG_EVENTS", "false")
	t.Setenv("VERDICT_METRICS_LISTEN_ADDRESS", "0.0.0.0:9300")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("level = %q, want env override", cfg.Telemetry.Logging.Level)
	}
	if cfg.Engine.LogEvents == nil || *cfg.Engine.LogEvents {
		t.Error("log_events env override not applied")
	}
	if cfg.Telemetry.Metrics.ListenAddress != "0.0.0.0:9300" {
		t.Errorf("listen_address = %q", cfg.Telemetry.Metrics.ListenAddress)
	}
}

func TestLoadConfigEnvOverridesRevalidate(t *testing.T) {
	path := writeConfig(t, "")

	t.Setenv("VERDICT_LOG_LEVEL", "loud")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Fatal("invalid env override should fail validation")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
