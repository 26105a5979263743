// Package ruleset defines the data model for declarative eligibility rulesets:
// the ruleset itself, the recursive rule (condition) tree, comparison operators,
// requirement severities, and the applicant attribute mapping evaluated against
// them.
//
// A ruleset is an ordered tree of conditions for one service. Each rule tests a
// single applicant attribute with a comparison operator, and may carry nested
// AND-joined children (conditions, consulted only when the rule passes) or
// OR-joined alternatives (any_of, consulted only when the rule fails).
//
// Rulesets are owned by the loading collaborator and are immutable inputs to
// the evaluation engine. Structural integrity (required fields, operator and
// operand pairing, regex patterns, nesting depth) is checked once at load time
// with Validate; the engine assumes a validated, acyclic tree.
package ruleset
