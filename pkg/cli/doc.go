// Package cli provides shared helpers for the verdict command line tool,
// including typed command errors and JSON output formatting.
package cli
