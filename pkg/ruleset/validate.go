package ruleset

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxDepth is the maximum authored nesting depth (conditions and any_of
// combined) accepted at load time. Human-authored rulesets nest a handful of
// levels; anything deeper is almost certainly a cyclic reference introduced
// by a broken generator, which would otherwise recurse unboundedly during
// evaluation.
const MaxDepth = 32

// IssueSeverity classifies a validation issue.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue is a single problem found while validating a ruleset's structure.
type Issue struct {
	Severity IssueSeverity `json:"severity"`
	RuleID   string        `json:"rule_id,omitempty"`
	Field    string        `json:"field,omitempty"`
	Message  string        `json:"message"`
}

func (i Issue) String() string {
	if i.RuleID != "" {
		return fmt.Sprintf("%s: rule %q: %s", i.Severity, i.RuleID, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Issues is an ordered list of validation issues.
type Issues []Issue

// HasErrors returns true if any issue is error severity.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err folds error-severity issues into a single error, or nil if the ruleset
// only produced warnings.
func (is Issues) Err() error {
	var msgs []string
	for _, i := range is {
		if i.Severity == SeverityError {
			msgs = append(msgs, i.String())
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid ruleset: %s", strings.Join(msgs, "; "))
}

// Validate checks a ruleset's structural integrity before it reaches the
// engine: required fields, operator/operand pairing, requirement severities,
// regex patterns, and nesting depth. Duplicate rule IDs are reported as
// warnings because the engine tolerates them (they alias in per-rule
// lookups). A nil ruleset or a missing rules sequence is an error; those are
// the only shapes the engine itself also rejects.
func Validate(rs *Ruleset) Issues {
	var issues Issues

	if rs == nil {
		return Issues{{Severity: SeverityError, Message: "ruleset is nil"}}
	}
	if rs.ServiceID == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "service_id",
			Message:  "missing required field 'service_id'",
		})
	}
	if rs.Rules == nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "rules",
			Message:  "'rules' must be a sequence",
		})
		return issues
	}
	if len(rs.Rules) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Field:    "rules",
			Message:  "ruleset has no rules; every attribute set validates",
		})
	}

	seen := make(map[string]bool)
	issues = append(issues, validateRules(rs.Rules, 1, seen)...)
	return issues
}

// validateRules validates one level of the tree and recurses into nested
// conditions and alternatives.
func validateRules(rules []*Rule, depth int, seen map[string]bool) Issues {
	var issues Issues

	if depth > MaxDepth {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Message:  fmt.Sprintf("rule nesting exceeds maximum depth %d; ruleset is likely cyclic", MaxDepth),
		})
		return issues
	}

	for _, r := range rules {
		if r == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Message:  "rule entry is null",
			})
			continue
		}

		if r.ID == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Field:    "id",
				Message:  "missing required field 'id'",
			})
		} else if seen[r.ID] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				RuleID:   r.ID,
				Field:    "id",
				Message:  "duplicate rule id; outcomes will alias in per-rule lookups",
			})
		} else {
			seen[r.ID] = true
		}

		if r.Key == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				RuleID:   r.ID,
				Field:    "key",
				Message:  "missing required field 'key'",
			})
		}

		if !ValidRequirement(r.Requirement) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				RuleID:   r.ID,
				Field:    "requirement",
				Message:  fmt.Sprintf("unknown requirement %q (expected required, optional, or disqualifying)", r.Requirement),
			})
		}

		issues = append(issues, validateOperands(r)...)
		issues = append(issues, validateRules(r.Conditions, depth+1, seen)...)
		issues = append(issues, validateRules(r.AnyOf, depth+1, seen)...)
	}

	return issues
}

// validateOperands checks that the rule carries the operands its operator
// needs. Unknown operators are warnings, not errors: the engine evaluates
// them as false and keeps going, so a newer ruleset degrades instead of
// failing to load.
func validateOperands(r *Rule) Issues {
	var issues Issues

	switch {
	case !KnownOperator(r.Operator):
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			RuleID:   r.ID,
			Field:    "operator",
			Message:  fmt.Sprintf("unknown operator %q; the condition will always evaluate false", r.Operator),
		})

	case r.Operator == OperatorIn || r.Operator == OperatorNotIn:
		if len(r.Values) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				RuleID:   r.ID,
				Field:    "values",
				Message:  fmt.Sprintf("operator %q requires a non-empty 'values' set", r.Operator),
			})
		}

	case r.Operator == OperatorBetween:
		if r.Min == nil || r.Max == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				RuleID:   r.ID,
				Field:    "min",
				Message:  "operator \"between\" requires both 'min' and 'max'",
			})
		}

	case r.Operator == OperatorMatches:
		pattern, ok := r.Value.(string)
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				RuleID:   r.ID,
				Field:    "value",
				Message:  "operator \"matches\" requires a string pattern in 'value'",
			})
		} else if _, err := regexp.Compile(pattern); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				RuleID:   r.ID,
				Field:    "value",
				Message:  fmt.Sprintf("invalid pattern %q: %v", pattern, err),
			})
		}

	case r.Operator.IsPresence():
		// exists / not_exists ignore operands; nothing to check.

	default:
		if r.Value == nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				RuleID:   r.ID,
				Field:    "value",
				Message:  fmt.Sprintf("operator %q requires a 'value' operand", r.Operator),
			})
		}
	}

	return issues
}
