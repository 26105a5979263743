package ruleset

import "sort"

// Attributes is the applicant-supplied attribute mapping evaluated against a
// ruleset. Values are strings, numbers, or booleans; a nil value is treated
// the same as an absent key. Attributes are supplied per evaluation call and
// are not retained by the engine beyond the current call, aside from key
// names in the audit log.
type Attributes map[string]any

// Lookup returns the value for key and whether it is present. A key mapped
// to nil counts as absent, matching the missing-attribute classification.
func (a Attributes) Lookup(key string) (any, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Keys returns the sorted names of the attributes that are present
// (non-nil). Key names are safe to log and audit; values are not.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k, v := range a {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy, used for the result's changes echo so the
// caller's map is never aliased by a returned result.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
