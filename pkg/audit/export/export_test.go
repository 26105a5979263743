package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"civium-hq/verdict/pkg/audit"
)

func sampleEvents() []*audit.Event {
	return []*audit.Event{
		{
			ID:           "ev-1",
			Type:         audit.TypeValidation,
			Timestamp:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			ServiceID:    "snap-ca",
			Valid:        false,
			PassedCount:  2,
			FailedCount:  1,
			SkippedCount: 1,
			DurationMS:   0.42,
			Errors: []audit.ErrorSummary{
				{Field: "age", Message: "Does not meet age requirement"},
				{Field: "income", Message: "Does not meet income requirement"},
			},
			AttributesProvided: []string{"age", "income", "state"},
		},
		{
			ID:                 "ev-2",
			Type:               audit.TypeValidation,
			Timestamp:          time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
			ServiceID:          "wic-ca",
			Valid:              true,
			PassedCount:        3,
			AttributesProvided: []string{"age"},
		},
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), sampleEvents(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded []*audit.Event
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "ev-1" || decoded[1].ServiceID != "wic-ca" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestJSONExporterEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), nil, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("output = %q, want %q", got, "[]")
	}
}

func TestJSONExporterPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(true).Export(context.Background(), sampleEvents(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("pretty output should be indented")
	}
}

func TestCSVExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVExporter(true).Export(context.Background(), sampleEvents(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}

	header := rows[0]
	if header[0] != "id" || header[len(header)-1] != "attributes_provided" {
		t.Errorf("header = %v", header)
	}

	first := rows[1]
	if first[0] != "ev-1" {
		t.Errorf("id = %q", first[0])
	}
	if first[5] != "false" {
		t.Errorf("valid column = %q, want %q", first[5], "false")
	}
	if first[10] != "age;income" {
		t.Errorf("error_fields = %q, want semicolon-joined fields", first[10])
	}
	if first[11] != "age;income;state" {
		t.Errorf("attributes_provided = %q", first[11])
	}
}

func TestCSVExporterNoHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVExporter(false).Export(context.Background(), sampleEvents(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
}

func TestCSVExporterContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewCSVExporter(false).Export(ctx, sampleEvents(), &buf)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestExportErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &ExportError{Format: "csv", Count: 7, Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("ExportError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "csv") || !strings.Contains(err.Error(), "7") {
		t.Errorf("message = %q", err.Error())
	}
}
