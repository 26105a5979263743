package ruleset

// Requirement represents the severity class of a rule: how a failed or
// unanswerable condition is classified in the result.
type Requirement string

const (
	// RequirementRequired is the default severity. A failed required rule is
	// recorded as a failure; a missing attribute is recorded as a skip.
	RequirementRequired Requirement = "required"

	// RequirementOptional marks informational conditions. A failed or
	// unanswerable optional rule does not appear in the pass/fail/skip
	// tallies at all.
	RequirementOptional Requirement = "optional"

	// RequirementDisqualifying marks hard stops. Failures carry the
	// disqualifying severity in the result so renderers can distinguish them
	// from ordinary required failures.
	RequirementDisqualifying Requirement = "disqualifying"
)

// ValidRequirement returns true if r is a declared requirement severity.
// The empty string is valid and resolves to required.
func ValidRequirement(r Requirement) bool {
	switch r {
	case "", RequirementRequired, RequirementOptional, RequirementDisqualifying:
		return true
	}
	return false
}

// Rule is a single testable eligibility condition. Rules form a tree:
// Conditions holds AND-joined children evaluated only when this rule passes,
// and AnyOf holds OR-joined alternatives consulted only when this rule fails.
type Rule struct {
	// ID identifies the rule for result cross-referencing. Intended unique
	// within a ruleset's full tree; uniqueness is reported by Validate but
	// not enforced by the engine (duplicates alias in per-rule lookups).
	ID string `json:"id"`

	// Key names the applicant attribute this rule reads.
	Key string `json:"key"`

	// Operator is the comparison to apply.
	Operator Operator `json:"operator"`

	// Value is the scalar operand for equals, not_equals, the numeric
	// comparisons, and matches (where it is a regular expression pattern).
	Value any `json:"value,omitempty"`

	// Values is the operand set for in and not_in.
	Values []any `json:"values,omitempty"`

	// Min and Max are the inclusive bounds for between.
	Min any `json:"min,omitempty"`
	Max any `json:"max,omitempty"`

	// Unit is a display annotation appended to expectation strings
	// (e.g. "percent", "years"). It never participates in comparison.
	Unit string `json:"unit,omitempty"`

	// Requirement governs failure severity. Empty resolves to required.
	Requirement Requirement `json:"requirement,omitempty"`

	// Display metadata, inert to evaluation.
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`

	// Conditions are AND-joined child rules, evaluated as additional
	// requirements only when this rule passes.
	Conditions []*Rule `json:"conditions,omitempty"`

	// AnyOf are OR-joined alternatives, each independently evaluated as a
	// stand-alone condition only when this rule fails.
	AnyOf []*Rule `json:"any_of,omitempty"`
}

// Severity returns the rule's requirement with the documented default
// applied: an absent requirement means required.
func (r *Rule) Severity() Requirement {
	if r.Requirement == "" {
		return RequirementRequired
	}
	return r.Requirement
}

// HasConditions returns true if the rule carries nested AND children.
func (r *Rule) HasConditions() bool {
	return len(r.Conditions) > 0
}

// HasAlternatives returns true if the rule carries any_of alternatives.
func (r *Rule) HasAlternatives() bool {
	return len(r.AnyOf) > 0
}
