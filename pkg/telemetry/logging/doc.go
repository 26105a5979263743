// Package logging provides the structured logger used across the engine and
// CLI. It wraps log/slog with level and format parsing and automatic
// redaction of applicant data: log attributes whose keys name sensitive
// applicant fields are masked, and string values matching common PII shapes
// (SSN, email, phone) are scrubbed before they reach the handler.
//
// Evaluation code never logs raw attribute values; the redactor additionally
// covers fields supplied by callers embedding the engine.
package logging
