package ruleset

// Operator represents a comparison operator in an eligibility rule.
type Operator string

const (
	OperatorEquals             Operator = "equals"
	OperatorNotEquals          Operator = "not_equals"
	OperatorLessThan           Operator = "less_than"
	OperatorLessThanOrEqual    Operator = "less_than_or_equal"
	OperatorGreaterThan        Operator = "greater_than"
	OperatorGreaterThanOrEqual Operator = "greater_than_or_equal"
	OperatorIn                 Operator = "in"
	OperatorNotIn              Operator = "not_in"
	OperatorBetween            Operator = "between"
	OperatorExists             Operator = "exists"
	OperatorNotExists          Operator = "not_exists"
	OperatorMatches            Operator = "matches"
)

// knownOperators is the set of operators the engine implements.
var knownOperators = map[Operator]bool{
	OperatorEquals:             true,
	OperatorNotEquals:          true,
	OperatorLessThan:           true,
	OperatorLessThanOrEqual:    true,
	OperatorGreaterThan:        true,
	OperatorGreaterThanOrEqual: true,
	OperatorIn:                 true,
	OperatorNotIn:              true,
	OperatorBetween:            true,
	OperatorExists:             true,
	OperatorNotExists:          true,
	OperatorMatches:            true,
}

// KnownOperator returns true if op is an operator the engine implements.
// Unknown operators are not a load-time hard failure for forward
// compatibility; the engine evaluates them as false and emits a warning.
func KnownOperator(op Operator) bool {
	return knownOperators[op]
}

// IsNumeric returns true if the operator coerces both operands to numbers
// before comparing.
func (op Operator) IsNumeric() bool {
	switch op {
	case OperatorLessThan, OperatorLessThanOrEqual,
		OperatorGreaterThan, OperatorGreaterThanOrEqual,
		OperatorBetween:
		return true
	}
	return false
}

// IsPresence returns true if the operator tests attribute presence and
// ignores the rule's value operands.
func (op Operator) IsPresence() bool {
	return op == OperatorExists || op == OperatorNotExists
}
