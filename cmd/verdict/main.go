// Verdict is an eligibility rule evaluation engine for public benefit and
// entitlement programs.
//
// It evaluates declarative rulesets against applicant attributes, producing
// a per-rule account of passed, failed, and skipped requirements plus an
// in-memory audit trail of every validation run.
//
// Usage:
//
//	# Evaluate a ruleset against a set of attributes
//	verdict validate --ruleset snap.json --attributes applicant.json
//
//	# Check a ruleset for structural problems
//	verdict lint --file snap.json
//
//	# Show version information
//	verdict version
package main

func main() {
	Execute()
}
