// Package audit provides the process-local, append-only log of anonymized
// validation events.
//
// An event is a privacy-scrubbed summary of one validation result: outcome
// counts, the error projection (field and message only), and the names of
// the attribute keys the applicant supplied. Raw attribute values never
// enter the log, so it is safe to export and ship.
//
// The log lives for the life of the process. It is appended to on every
// validation, never pruned except by an explicit Clear, and carries no size
// cap; bounding is the caller's responsibility. Appends are serialized by an
// internal lock so concurrent validations against one engine are safe.
//
// The export subpackage writes events as JSON or CSV; Scheduler runs
// periodic snapshot exports on a cron schedule without ever pruning.
package audit
