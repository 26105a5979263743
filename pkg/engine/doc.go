// Package engine evaluates applicant attributes against a declarative
// eligibility ruleset and produces a structured, auditable account of which
// conditions passed, failed, or could not be evaluated.
//
// # Architecture
//
// The engine uses a three-layer design:
//
//  1. Operator library - pure comparison functions (equality, numeric ranges,
//     set membership, pattern match, presence)
//  2. Condition evaluator - applies one rule's operator to one attribute
//     value and renders the human-readable expectation string
//  3. Rule tree walker - recursively traverses the ordered rule tree,
//     applying AND-nesting (conditions) and OR-alternation (any_of) policy
//     and classifying every node as passed, failed, or skipped
//
// # Evaluation flow
//
// The walker evaluates top-level rules left-to-right. For each node it reads
// the named attribute; a missing attribute skips the node (unless optional,
// which vanishes from the tallies). Otherwise the condition is evaluated: on
// a pass the node's nested conditions are evaluated as independent AND-joined
// requirements; on a fail the node's any_of alternatives are each tried as
// stand-alone conditions, and any alternative pass records the parent as
// satisfied by alternative. A fail with no satisfying alternative is
// classified by the rule's requirement severity.
//
// Each recursive call returns an immutable outcome delta that the caller
// merges in declared order, so evaluation shares no mutable state and the
// same engine can serve concurrent Validate calls.
//
// # Validity
//
// A result is valid exactly when the failed list is empty. A skipped entry
// (missing required attribute) does not by itself invalidate the result:
// validity reflects only conditions that were actually evaluated and
// explicitly failed. This is deliberate, documented screener behavior.
//
// # Basic usage
//
//	eng, err := engine.New(engine.DefaultConfig(), slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := eng.Validate(ctx, rs, ruleset.Attributes{
//	    "age":                65,
//	    "citizenship_status": "us_citizen",
//	})
//	if err != nil {
//	    return err
//	}
//	if !res.Valid {
//	    for _, e := range res.Errors {
//	        fmt.Println(e.Field, e.Message)
//	    }
//	}
//
// Every Validate call appends a privacy-scrubbed event (counts and attribute
// key names, never values) to the engine's audit log unless disabled in the
// configuration.
package engine
