package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"civium-hq/verdict/pkg/audit"
)

// ExportError wraps a failure while exporting events.
type ExportError struct {
	Format string
	Count  int
	Cause  error
}

// Error returns the error message.
func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export of %d events failed: %v", e.Format, e.Count, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Exporter writes audit events to a writer in a specific format.
type Exporter interface {
	Export(ctx context.Context, events []*audit.Event, w io.Writer) error
}

// JSONExporter exports audit events to JSON format.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes events to w as a JSON array. An empty event list exports as
// an empty array rather than null.
func (e *JSONExporter) Export(ctx context.Context, events []*audit.Event, w io.Writer) error {
	if events == nil {
		events = []*audit.Event{}
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(events, "", "  ")
	} else {
		data, err = json.Marshal(events)
	}
	if err != nil {
		return &ExportError{Format: "json", Count: len(events), Cause: err}
	}

	if _, err := w.Write(data); err != nil {
		return &ExportError{Format: "json", Count: len(events), Cause: err}
	}
	return nil
}
