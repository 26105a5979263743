package engine

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// numericValue converts a Go numeric value to float64. It does not parse
// strings; strict equality must not coerce across types.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toNumber coerces a value to float64 for the numeric operators. Numeric
// strings are parsed; everything else (booleans, malformed strings, nil)
// fails the coercion, which makes every numeric comparison on it false. A
// malformed numeric attribute never satisfies a numeric comparison.
func toNumber(v any) (float64, bool) {
	if n, ok := numericValue(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// strictEqual compares two values with strict value+type equality: numbers
// compare numerically regardless of numeric kind (int 65 equals float64 65),
// but a string never equals a number and a boolean never equals either.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	an, aNum := numericValue(a)
	bn, bNum := numericValue(b)
	if aNum && bNum {
		return an == bn
	}
	if aNum != bNum {
		return false
	}

	return reflect.DeepEqual(a, b)
}

// memberOf tests set membership by strict equality against each element.
func memberOf(v any, set []any) bool {
	for _, elem := range set {
		if strictEqual(v, elem) {
			return true
		}
	}
	return false
}

// compareNumeric coerces both operands and applies cmp. A failed coercion on
// either side yields false (fails closed).
func compareNumeric(actual, expected any, cmp func(a, b float64) bool) bool {
	a, ok := toNumber(actual)
	if !ok {
		return false
	}
	b, ok := toNumber(expected)
	if !ok {
		return false
	}
	return cmp(a, b)
}

// betweenInclusive tests min <= v <= max with numeric coercion on all three
// operands, inclusive on both bounds.
func betweenInclusive(v, min, max any) bool {
	n, ok := toNumber(v)
	if !ok {
		return false
	}
	lo, ok := toNumber(min)
	if !ok {
		return false
	}
	hi, ok := toNumber(max)
	if !ok {
		return false
	}
	return n >= lo && n <= hi
}

// formatScalar renders a value the way it appears in expectation strings:
// integral floats without a trailing fraction, booleans as true/false.
func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// formatSet renders a values set as "[a, b, c]".
func formatSet(set []any) string {
	parts := make([]string, len(set))
	for i, v := range set {
		parts[i] = formatScalar(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
