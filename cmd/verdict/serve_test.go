package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"civium-hq/verdict/pkg/audit"
	"civium-hq/verdict/pkg/config"
	"civium-hq/verdict/pkg/engine"
	"civium-hq/verdict/pkg/ruleset"
	"civium-hq/verdict/pkg/telemetry/logging"
)

func TestEngineConfigFrom(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got := engineConfigFrom(config.DefaultConfig())
		if !got.LogEvents {
			t.Error("LogEvents should default to true")
		}
		if got.AuditBuffer != config.DefaultAuditBuffer {
			t.Errorf("AuditBuffer = %d, want %d", got.AuditBuffer, config.DefaultAuditBuffer)
		}
	})

	t.Run("explicit log_events false is honored", func(t *testing.T) {
		cfg := config.DefaultConfig()
		f := false
		cfg.Engine.LogEvents = &f

		if got := engineConfigFrom(cfg); got.LogEvents {
			t.Error("LogEvents = true, want false")
		}
	})

	t.Run("audit buffer carries through", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Engine.AuditBuffer = 128

		if got := engineConfigFrom(cfg); got.AuditBuffer != 128 {
			t.Errorf("AuditBuffer = %d, want 128", got.AuditBuffer)
		}
	})
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger, err := logging.New(logging.Config{Writer: io.Discard})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	rs := &ruleset.Ruleset{
		ServiceID: "snap-ca",
		Rules: []*ruleset.Rule{
			{ID: "age", Key: "age", Operator: ruleset.OperatorGreaterThanOrEqual, Value: 18.0},
		},
	}

	eng, err := engine.New(engine.DefaultConfig(), logger.Slog())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	srv := httptest.NewServer(newServeMux(eng, rs, logger))
	t.Cleanup(srv.Close)
	return srv
}

func TestServeMuxHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestServeMuxValidate(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/validate", "application/json",
		strings.NewReader(`{"age": 40}`))
	if err != nil {
		t.Fatalf("POST /validate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result engine.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("response is not a result: %v", err)
	}
	if !result.Valid {
		t.Error("Valid = false, want true")
	}
	if len(result.Passed) != 1 {
		t.Errorf("passed = %d, want 1", len(result.Passed))
	}
}

func TestServeMuxValidateRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/validate", "application/json",
		strings.NewReader(`{"age": `))
	if err != nil {
		t.Fatalf("POST /validate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServeMuxValidateRequiresPost(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/validate")
	if err != nil {
		t.Fatalf("GET /validate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestNewSnapshotFunc(t *testing.T) {
	events := []*audit.Event{
		{ID: "evt-1", ServiceID: "snap-ca", Valid: true},
	}

	t.Run("json snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.json")

		if err := newSnapshotFunc(path, "json")(events); err != nil {
			t.Fatalf("snapshot: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		var decoded []*audit.Event
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("snapshot is not JSON: %v", err)
		}
		if len(decoded) != 1 || decoded[0].ServiceID != "snap-ca" {
			t.Errorf("decoded = %+v", decoded)
		}
	})

	t.Run("csv snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.csv")

		if err := newSnapshotFunc(path, "csv")(events); err != nil {
			t.Fatalf("snapshot: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !strings.Contains(string(data), "snap-ca") {
			t.Errorf("snapshot missing event row: %s", data)
		}
	})

	t.Run("unwritable path fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "snapshot.json")

		if err := newSnapshotFunc(path, "json")(events); err == nil {
			t.Error("expected error for unwritable path")
		}
	})
}
