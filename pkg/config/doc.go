// Package config loads and validates the process configuration for the
// verdict CLI and any host embedding the engine.
//
// Configuration is read from a YAML file, merged with defaults, and
// optionally overridden by environment variables of the form
// VERDICT_SECTION_FIELD (e.g. VERDICT_LOG_LEVEL). Watcher re-reads the file
// on change with debouncing, so long-running hosts can adjust log levels and
// audit snapshot schedules without a restart.
//
// This package configures ambient concerns only (logging, metrics, audit
// snapshots, engine toggles). Rulesets are not configuration; they are
// inputs supplied per evaluation.
package config
