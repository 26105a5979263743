package engine

import (
	"fmt"

	"civium-hq/verdict/pkg/audit"
)

// Config contains configuration for the eligibility engine.
type Config struct {
	// LogEvents controls whether each Validate call appends a scrubbed event
	// to the engine's audit log.
	// Default: true.
	LogEvents bool

	// EventCallback, when set, is invoked synchronously with every audit
	// event after it is appended. It receives the same scrubbed event that
	// the log stores; attribute values are never included.
	EventCallback func(*audit.Event)

	// AuditBuffer pre-sizes the audit log's backing slice. The log itself is
	// unbounded; bounding is the caller's responsibility.
	// Default: 64.
	AuditBuffer int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		LogEvents:   true,
		AuditBuffer: 64,
	}
}

// Validate validates the engine configuration.
func (c *Config) Validate() error {
	if c.AuditBuffer < 0 {
		return fmt.Errorf("%w: audit buffer cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// WithLogEvents enables or disables audit event logging.
func (c *Config) WithLogEvents(enabled bool) *Config {
	c.LogEvents = enabled
	return c
}

// WithEventCallback sets the audit event callback.
func (c *Config) WithEventCallback(cb func(*audit.Event)) *Config {
	c.EventCallback = cb
	return c
}
