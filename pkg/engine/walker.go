package engine

import (
	"fmt"

	"civium-hq/verdict/pkg/ruleset"
)

// delta is the immutable outcome accumulation returned by one recursive
// evaluation step. The caller merges deltas in declared rule order, so the
// walk needs no shared mutable result and is safe to run concurrently across
// Validate calls.
type delta struct {
	passed   []Outcome
	failed   []Outcome
	skipped  []Outcome
	ignored  []Outcome
	errors   []Error
	warnings []Warning
}

// merge appends another delta, preserving declared order.
func (d *delta) merge(other delta) {
	d.passed = append(d.passed, other.passed...)
	d.failed = append(d.failed, other.failed...)
	d.skipped = append(d.skipped, other.skipped...)
	d.ignored = append(d.ignored, other.ignored...)
	d.errors = append(d.errors, other.errors...)
	d.warnings = append(d.warnings, other.warnings...)
}

// evaluateRules walks an ordered rule list left-to-right and merges each
// rule's delta.
func evaluateRules(rules []*ruleset.Rule, attrs ruleset.Attributes) delta {
	var d delta
	for _, rule := range rules {
		d.merge(evaluateRule(rule, attrs))
	}
	return d
}

// evaluateRule classifies one rule node and, where the tree shape calls for
// it, descends into nested conditions or consults any_of alternatives.
//
// A rule node lands in exactly one of passed/failed/skipped, or in none of
// them when it is optional and failed or unanswerable. Nested failures count
// toward overall invalidity exactly like top-level failures; nesting only
// gates descent ("only descend on parent pass"), it is not a result-level
// short circuit.
func evaluateRule(rule *ruleset.Rule, attrs ruleset.Attributes) delta {
	var d delta

	value, present := attrs.Lookup(rule.Key)

	// Missing-value branch. not_exists is the one operator a missing
	// attribute can satisfy, so it falls through to normal evaluation.
	if !present && rule.Operator != ruleset.OperatorNotExists {
		if rule.Severity() != ruleset.RequirementOptional {
			d.skipped = append(d.skipped, Outcome{
				RuleID:   rule.ID,
				Key:      rule.Key,
				Operator: rule.Operator,
				Expected: describeExpectation(rule),
				Severity: rule.Severity(),
				Reason:   ReasonMissingAttribute,
				Message:  fmt.Sprintf("missing attribute %q", rule.Key),
			})
		}
		// No descent into conditions or any_of either way.
		return d
	}

	ok, warn := evaluateCondition(rule, value)
	if warn != nil {
		d.warnings = append(d.warnings, *warn)
	}

	if ok {
		d.passed = append(d.passed, passedOutcome(rule, value, ""))

		// AND-joined children: each evaluated as an independent rule against
		// the same attributes, outcomes merged into the same lists.
		for _, child := range rule.Conditions {
			d.merge(evaluateRule(child, attrs))
		}
		return d
	}

	// OR alternation: each alternative is tried as a stand-alone condition,
	// ignoring its own conditions, any_of, and requirement. Any passing
	// alternative satisfies the parent; the alternatives themselves never
	// appear as separate outcomes, and a satisfied parent does not descend
	// into its conditions.
	if rule.HasAlternatives() {
		for _, alt := range rule.AnyOf {
			altValue, altPresent := attrs.Lookup(alt.Key)
			if !altPresent && alt.Operator != ruleset.OperatorNotExists {
				continue
			}
			altOK, altWarn := evaluateCondition(alt, altValue)
			if altWarn != nil {
				d.warnings = append(d.warnings, *altWarn)
			}
			if altOK {
				d.passed = append(d.passed, passedOutcome(rule, value, SatisfiedByAlternative))
				return d
			}
		}
	}

	// Fail with no satisfying alternative: classify by requirement.
	if rule.Severity() == ruleset.RequirementOptional {
		// Optional failures vanish from the tallies. They are recorded in
		// the ignored list only, which neither counts nor invalidates.
		d.ignored = append(d.ignored, Outcome{
			RuleID:   rule.ID,
			Key:      rule.Key,
			Operator: rule.Operator,
			Expected: describeExpectation(rule),
			Actual:   value,
			Severity: ruleset.RequirementOptional,
			Reason:   ReasonOptionalFailed,
		})
		return d
	}

	message := failureMessage(rule)
	d.failed = append(d.failed, Outcome{
		RuleID:   rule.ID,
		Key:      rule.Key,
		Operator: rule.Operator,
		Expected: describeExpectation(rule),
		Actual:   value,
		Severity: rule.Severity(),
		Message:  message,
	})
	d.errors = append(d.errors, Error{
		Field:   rule.Key,
		Message: message,
	})
	return d
}

// passedOutcome builds the outcome record for a passing rule.
func passedOutcome(rule *ruleset.Rule, value any, satisfiedBy string) Outcome {
	return Outcome{
		RuleID:      rule.ID,
		Key:         rule.Key,
		Operator:    rule.Operator,
		Expected:    describeExpectation(rule),
		Actual:      value,
		Severity:    rule.Severity(),
		SatisfiedBy: satisfiedBy,
	}
}

// failureMessage returns the rule's description, or a synthesized
// requirement statement when the ruleset author supplied none.
func failureMessage(rule *ruleset.Rule) string {
	if rule.Description != "" {
		return rule.Description
	}
	label := rule.Label
	if label == "" {
		label = rule.Key
	}
	return fmt.Sprintf("Does not meet %s requirement", label)
}
