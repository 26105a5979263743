package engine

import "errors"

// Sentinel errors for malformed input rejected before evaluation begins.
// All rule-level failures are local and never surface as errors; the only
// process-fatal condition is input violating the tree's basic shape.
var (
	// ErrNilRuleset indicates Validate was called with a nil ruleset.
	ErrNilRuleset = errors.New("ruleset cannot be nil")

	// ErrNoRules indicates the ruleset's rules field is not a sequence.
	ErrNoRules = errors.New("ruleset rules must be a sequence")

	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)
