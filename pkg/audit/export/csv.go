package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"civium-hq/verdict/pkg/audit"
)

// CSVExporter exports audit events to CSV format. Nested structures are
// flattened: error fields and attribute keys become semicolon-separated
// strings.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

// Export writes events to w as CSV rows.
func (e *CSVExporter) Export(ctx context.Context, events []*audit.Event, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(headerRow()); err != nil {
			return &ExportError{Format: "csv", Count: len(events), Cause: err}
		}
	}

	for _, event := range events {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := writer.Write(eventToRow(event)); err != nil {
			return &ExportError{Format: "csv", Count: len(events), Cause: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &ExportError{Format: "csv", Count: len(events), Cause: err}
	}
	return nil
}

func headerRow() []string {
	return []string{
		"id", "type", "timestamp",
		"service_id", "jurisdiction_id",
		"valid", "passed_count", "failed_count", "skipped_count",
		"duration_ms", "error_fields", "attributes_provided",
	}
}

func eventToRow(event *audit.Event) []string {
	fields := make([]string, 0, len(event.Errors))
	for _, e := range event.Errors {
		fields = append(fields, e.Field)
	}

	return []string{
		event.ID,
		event.Type,
		event.Timestamp.Format(time.RFC3339Nano),
		event.ServiceID,
		event.JurisdictionID,
		strconv.FormatBool(event.Valid),
		strconv.Itoa(event.PassedCount),
		strconv.Itoa(event.FailedCount),
		strconv.Itoa(event.SkippedCount),
		strconv.FormatFloat(event.DurationMS, 'f', -1, 64),
		strings.Join(fields, ";"),
		strings.Join(event.AttributesProvided, ";"),
	}
}
