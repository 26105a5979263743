package audit

import "time"

// TypeValidation is the event type tag for validation events.
const TypeValidation = "validation"

// Event is the anonymized record of one validation call. It carries counts
// and attribute key names, never attribute values.
type Event struct {
	// ID is a UUID assigned when the event is appended to a log.
	ID string `json:"id"`

	// Type tags the event kind (currently always "validation").
	Type string `json:"type"`

	// Timestamp is when the validation ran.
	Timestamp time.Time `json:"timestamp"`

	// ServiceID and JurisdictionID identify the ruleset that was evaluated.
	ServiceID      string `json:"service_id"`
	JurisdictionID string `json:"jurisdiction_id,omitempty"`

	// Valid is the overall outcome.
	Valid bool `json:"valid"`

	// Outcome counts.
	PassedCount  int `json:"passed_count"`
	FailedCount  int `json:"failed_count"`
	SkippedCount int `json:"skipped_count"`

	// DurationMS is the evaluation wall-clock span.
	DurationMS float64 `json:"duration_ms"`

	// Errors is the field/message projection of the result's error list.
	Errors []ErrorSummary `json:"errors,omitempty"`

	// AttributesProvided lists the names of the attribute keys that were
	// supplied, sorted. Values are deliberately omitted.
	AttributesProvided []string `json:"attributes_provided"`
}

// ErrorSummary is the scrubbed projection of one validation error.
type ErrorSummary struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
