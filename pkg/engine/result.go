package engine

import (
	"time"

	"civium-hq/verdict/pkg/audit"
	"civium-hq/verdict/pkg/ruleset"
)

// Outcome classification reasons.
const (
	// ReasonMissingAttribute marks a skipped rule whose attribute was not
	// supplied (or was null).
	ReasonMissingAttribute = "missing_attribute"

	// ReasonOptionalFailed marks a failed optional rule in the ignored list.
	// Failed optional rules never appear in the pass/fail/skip tallies.
	ReasonOptionalFailed = "optional_failed"

	// SatisfiedByAlternative tags a rule whose own condition failed but whose
	// any_of alternatives satisfied it.
	SatisfiedByAlternative = "alternative"
)

// Warning codes for non-fatal evaluation diagnostics.
const (
	WarnUnknownOperator = "unknown_operator"
	WarnInvalidPattern  = "invalid_pattern"
)

// Outcome records the classification of one rule node in one evaluation.
type Outcome struct {
	// RuleID cross-references the rule in the input ruleset.
	RuleID string `json:"rule_id"`

	// Key is the attribute the rule read.
	Key string `json:"key"`

	// Operator is the rule's comparison operator.
	Operator ruleset.Operator `json:"operator"`

	// Expected is the human-readable expectation string for the condition.
	Expected string `json:"expected,omitempty"`

	// Actual is the attribute value the condition saw (null for skips).
	// Serialized without omitempty so false and zero survive encoding.
	Actual any `json:"actual"`

	// Severity is the rule's resolved requirement severity.
	Severity ruleset.Requirement `json:"severity"`

	// Reason explains skips and ignored entries (missing_attribute,
	// optional_failed).
	Reason string `json:"reason,omitempty"`

	// Message carries the display message for failures and skips.
	Message string `json:"message,omitempty"`

	// SatisfiedBy is "alternative" when the rule's own condition failed but
	// an any_of alternative passed.
	SatisfiedBy string `json:"satisfied_by,omitempty"`
}

// Error is the externally-consumed record of a failed condition.
type Error struct {
	// Field is the rule's attribute key.
	Field string `json:"field"`

	// Message is the rule's description, or a synthesized requirement
	// statement when the rule has none.
	Message string `json:"message"`
}

// Warning is a non-fatal evaluation diagnostic. Warnings replace ambient
// console logging so unknown operators and bad patterns are observable from
// the result itself.
type Warning struct {
	RuleID  string `json:"rule_id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the full account of one validation call. It is constructed fresh
// per call, fully populated by the tree walk, finalized by the aggregator,
// and never mutated after return.
type Result struct {
	// Valid is true exactly when Failed is empty. Skips do not invalidate.
	Valid bool `json:"valid"`

	// ServiceID echoes the ruleset's service identifier.
	ServiceID string `json:"service_id"`

	// Timestamp is when the evaluation ran (UTC).
	Timestamp time.Time `json:"timestamp"`

	// Changes echoes the input attributes (shallow copy, display/audit only).
	Changes ruleset.Attributes `json:"changes"`

	// Errors lists one entry per failed non-optional condition, in rule
	// order.
	Errors []Error `json:"errors"`

	// Passed, Failed, and Skipped are the ordered outcome lists. A rule node
	// appears in exactly one of them per evaluation, or in none when it is
	// optional and failed.
	Passed  []Outcome `json:"passed"`
	Failed  []Outcome `json:"failed"`
	Skipped []Outcome `json:"skipped"`

	// Ignored lists failed optional rules. It exists purely for
	// observability: these rules are invisible to the tallies and to Valid.
	Ignored []Outcome `json:"ignored,omitempty"`

	// Warnings carries non-fatal evaluation diagnostics.
	Warnings []Warning `json:"warnings,omitempty"`

	// Data echoes the input ruleset for rendering collaborators.
	Data *ruleset.Ruleset `json:"data"`

	// DurationMS is the wall-clock span of the full tree walk.
	DurationMS float64 `json:"duration_ms"`
}

// Event derives the privacy-scrubbed audit event for this result: outcome
// counts, error projections, and the names of the supplied attribute keys.
// Attribute values never reach the audit log.
func (r *Result) Event() *audit.Event {
	ev := &audit.Event{
		Type:               audit.TypeValidation,
		Timestamp:          r.Timestamp,
		ServiceID:          r.ServiceID,
		Valid:              r.Valid,
		PassedCount:        len(r.Passed),
		FailedCount:        len(r.Failed),
		SkippedCount:       len(r.Skipped),
		DurationMS:         r.DurationMS,
		AttributesProvided: r.Changes.Keys(),
	}
	if r.Data != nil {
		ev.JurisdictionID = r.Data.JurisdictionID
	}
	for _, e := range r.Errors {
		ev.Errors = append(ev.Errors, audit.ErrorSummary{
			Field:   e.Field,
			Message: e.Message,
		})
	}
	return ev
}

// finalize computes validity and duration. Validity reflects only conditions
// that were actually evaluated and explicitly failed; a missing required
// attribute skips its rule without disqualifying the applicant.
func (r *Result) finalize(start time.Time) {
	r.Valid = len(r.Failed) == 0
	r.DurationMS = float64(time.Since(start).Microseconds()) / 1000.0
}
