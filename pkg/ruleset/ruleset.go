package ruleset

// Ruleset is the ordered tree of eligibility conditions for one service in
// one jurisdiction. It is an immutable input to the evaluation engine: the
// engine never mutates it during evaluation, only echoes it back on the
// result for rendering.
type Ruleset struct {
	// ServiceID identifies the service this ruleset screens for.
	ServiceID string `json:"service_id"`

	// Name is the human-readable service name.
	Name string `json:"name,omitempty"`

	// JurisdictionID identifies the jurisdiction that authored the ruleset.
	JurisdictionID string `json:"jurisdiction_id,omitempty"`

	// EffectiveDate is the date the ruleset took effect (display metadata,
	// ISO 8601 by convention; the engine does not interpret it).
	EffectiveDate string `json:"effective_date,omitempty"`

	// Rules is the ordered sequence of top-level rules, evaluated
	// left-to-right.
	Rules []*Rule `json:"rules"`
}

// RuleByID walks the full tree and returns the first rule with the given id,
// or nil. With duplicate IDs the first in declared order wins, matching how
// duplicates alias in result lookups.
func (rs *Ruleset) RuleByID(id string) *Rule {
	var find func(rules []*Rule) *Rule
	find = func(rules []*Rule) *Rule {
		for _, r := range rules {
			if r.ID == id {
				return r
			}
			if found := find(r.Conditions); found != nil {
				return found
			}
			if found := find(r.AnyOf); found != nil {
				return found
			}
		}
		return nil
	}
	return find(rs.Rules)
}

// RuleCount returns the total number of rules in the full tree, alternatives
// included.
func (rs *Ruleset) RuleCount() int {
	var count func(rules []*Rule) int
	count = func(rules []*Rule) int {
		n := 0
		for _, r := range rules {
			n += 1 + count(r.Conditions) + count(r.AnyOf)
		}
		return n
	}
	return count(rs.Rules)
}
