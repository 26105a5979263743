package engine

import (
	"fmt"
	"regexp"

	"civium-hq/verdict/pkg/ruleset"
)

// evaluateCondition evaluates one rule's operator against one attribute
// value. The returned warning is non-nil for the two non-fatal input errors:
// an unrecognized operator and a regex pattern that failed to compile. In
// both cases the condition evaluates false and the caller keeps going.
func evaluateCondition(rule *ruleset.Rule, value any) (bool, *Warning) {
	switch rule.Operator {
	case ruleset.OperatorEquals:
		return strictEqual(value, rule.Value), nil

	case ruleset.OperatorNotEquals:
		return !strictEqual(value, rule.Value), nil

	case ruleset.OperatorLessThan:
		return compareNumeric(value, rule.Value, func(a, b float64) bool { return a < b }), nil

	case ruleset.OperatorLessThanOrEqual:
		return compareNumeric(value, rule.Value, func(a, b float64) bool { return a <= b }), nil

	case ruleset.OperatorGreaterThan:
		return compareNumeric(value, rule.Value, func(a, b float64) bool { return a > b }), nil

	case ruleset.OperatorGreaterThanOrEqual:
		return compareNumeric(value, rule.Value, func(a, b float64) bool { return a >= b }), nil

	case ruleset.OperatorIn:
		return memberOf(value, rule.Values), nil

	case ruleset.OperatorNotIn:
		return !memberOf(value, rule.Values), nil

	case ruleset.OperatorBetween:
		return betweenInclusive(value, rule.Min, rule.Max), nil

	case ruleset.OperatorExists:
		return value != nil, nil

	case ruleset.OperatorNotExists:
		return value == nil, nil

	case ruleset.OperatorMatches:
		return evaluateMatches(rule, value)

	default:
		return false, &Warning{
			RuleID:  rule.ID,
			Code:    WarnUnknownOperator,
			Message: fmt.Sprintf("unknown operator %q; condition treated as failed", rule.Operator),
		}
	}
}

// evaluateMatches compiles the rule's value as a regular expression and tests
// it against the string form of the attribute value. An invalid pattern is a
// ruleset configuration error that the loader should have caught; if it
// reaches the engine the node fails rather than crashing the run.
func evaluateMatches(rule *ruleset.Rule, value any) (bool, *Warning) {
	pattern, ok := rule.Value.(string)
	if !ok {
		return false, &Warning{
			RuleID:  rule.ID,
			Code:    WarnInvalidPattern,
			Message: fmt.Sprintf("matches operator requires a string pattern, got %T", rule.Value),
		}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, &Warning{
			RuleID:  rule.ID,
			Code:    WarnInvalidPattern,
			Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
		}
	}

	return re.MatchString(formatScalar(value)), nil
}

// describeExpectation renders a human-readable statement of the condition
// for error messages. The output is stable and operator-specific; rendering
// collaborators key off these exact forms. The rule's unit, when present, is
// appended as a display suffix ("<= 200 percent").
func describeExpectation(rule *ruleset.Rule) string {
	var s string

	switch rule.Operator {
	case ruleset.OperatorEquals:
		s = formatScalar(rule.Value)
	case ruleset.OperatorNotEquals:
		s = "not " + formatScalar(rule.Value)
	case ruleset.OperatorLessThan:
		s = "< " + formatScalar(rule.Value)
	case ruleset.OperatorLessThanOrEqual:
		s = "<= " + formatScalar(rule.Value)
	case ruleset.OperatorGreaterThan:
		s = "> " + formatScalar(rule.Value)
	case ruleset.OperatorGreaterThanOrEqual:
		s = ">= " + formatScalar(rule.Value)
	case ruleset.OperatorIn:
		s = "one of " + formatSet(rule.Values)
	case ruleset.OperatorNotIn:
		s = "not one of " + formatSet(rule.Values)
	case ruleset.OperatorBetween:
		s = fmt.Sprintf("between %s and %s", formatScalar(rule.Min), formatScalar(rule.Max))
	case ruleset.OperatorExists:
		s = "exists"
	case ruleset.OperatorNotExists:
		s = "does not exist"
	case ruleset.OperatorMatches:
		s = formatScalar(rule.Value)
	default:
		s = string(rule.Operator)
	}

	if rule.Unit != "" {
		s += " " + rule.Unit
	}
	return s
}
