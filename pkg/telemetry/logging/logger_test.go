package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("unknown level should fail")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("validation complete", "service_id", "snap-ca", "valid", true)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "validation complete" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["service_id"] != "snap-ca" {
		t.Errorf("service_id = %v", record["service_id"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("below-level records leaked: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("before")
	if strings.Contains(buf.String(), "before") {
		t.Fatalf("debug record leaked at info level: %q", buf.String())
	}

	if err := logger.SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	logger.Debug("after")
	if !strings.Contains(buf.String(), "after") {
		t.Errorf("debug record missing after SetLevel: %q", buf.String())
	}

	// Derived loggers share the level.
	child := logger.With("component", "test")
	buf.Reset()
	child.Debug("child record")
	if !strings.Contains(buf.String(), "child record") {
		t.Errorf("derived logger did not pick up new level: %q", buf.String())
	}

	if err := logger.SetLevel("loud"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestLoggerRedaction(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{
		Level:            "info",
		Format:           "json",
		RedactAttributes: true,
		SensitiveKeys:    []string{"case_number"},
		Writer:           &buf,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("applicant data", "ssn", "123-45-6789", "case_number", "A-17", "state", "CA")

	out := buf.String()
	if strings.Contains(out, "123-45-6789") {
		t.Error("ssn value leaked into log output")
	}
	if strings.Contains(out, "A-17") {
		t.Error("configured sensitive key leaked")
	}
	if !strings.Contains(out, "CA") {
		t.Error("non-sensitive value should pass through")
	}
}

func TestLoggerWithRedactsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{
		Level:            "info",
		Format:           "json",
		RedactAttributes: true,
		Writer:           &buf,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.With("income", 2500).Info("screening")

	if strings.Contains(buf.String(), "2500") {
		t.Error("income field added via With leaked")
	}
}

func TestLoggerRedactionDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("raw", "ssn", "123-45-6789")
	if !strings.Contains(buf.String(), "123-45-6789") {
		t.Error("redaction should be off unless enabled")
	}
}
