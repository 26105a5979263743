package engine

import (
	"context"
	"log/slog"
	"time"

	"civium-hq/verdict/pkg/audit"
	"civium-hq/verdict/pkg/ruleset"
	"civium-hq/verdict/pkg/telemetry/metrics"
)

// Engine evaluates attribute sets against eligibility rulesets. It owns a
// process-local audit log that is created empty at construction and appended
// to on every Validate call.
//
// Evaluation itself is a pure function of (ruleset, attributes); the audit
// append is the only side effect and is serialized by the log's own lock, so
// concurrent Validate calls against one Engine are safe.
type Engine struct {
	config  *Config
	logger  *slog.Logger
	auditor *audit.Log
	metrics *metrics.ValidationMetrics
}

// New creates an engine with an empty audit log.
func New(config *Config, logger *slog.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		config:  config,
		logger:  logger.With("component", "engine"),
		auditor: audit.NewLog(config.AuditBuffer),
	}, nil
}

// SetMetrics attaches validation metrics. Call before serving traffic;
// a nil receiver value disables metric recording.
func (e *Engine) SetMetrics(m *metrics.ValidationMetrics) {
	e.metrics = m
}

// Audit returns the engine's audit log for reading, clearing, and export.
func (e *Engine) Audit() *audit.Log {
	return e.auditor
}

// Validate evaluates the attribute mapping against the ruleset and returns
// the full classification. The ruleset is never mutated; the result echoes a
// shallow copy of the attributes and the ruleset itself for rendering.
//
// The returned error is non-nil only for input that violates the tree's
// basic shape (nil ruleset, rules not a sequence). Rule-level problems -
// unknown operators, malformed numeric attributes, invalid patterns - are
// local to their node and surface as warnings or failures on the result.
func (e *Engine) Validate(ctx context.Context, rs *ruleset.Ruleset, attrs ruleset.Attributes) (*Result, error) {
	if rs == nil {
		return nil, ErrNilRuleset
	}
	if rs.Rules == nil {
		return nil, ErrNoRules
	}

	start := time.Now()
	result := &Result{
		ServiceID: rs.ServiceID,
		Timestamp: start.UTC(),
		Changes:   attrs.Clone(),
		Errors:    []Error{},
		Passed:    []Outcome{},
		Failed:    []Outcome{},
		Skipped:   []Outcome{},
		Data:      rs,
	}

	d := evaluateRules(rs.Rules, attrs)
	result.Passed = append(result.Passed, d.passed...)
	result.Failed = append(result.Failed, d.failed...)
	result.Skipped = append(result.Skipped, d.skipped...)
	result.Ignored = append(result.Ignored, d.ignored...)
	result.Errors = append(result.Errors, d.errors...)
	result.Warnings = append(result.Warnings, d.warnings...)
	result.finalize(start)

	for _, w := range result.Warnings {
		e.logger.WarnContext(ctx, "evaluation diagnostic",
			"service_id", rs.ServiceID,
			"rule_id", w.RuleID,
			"code", w.Code,
			"detail", w.Message,
		)
	}

	e.logger.DebugContext(ctx, "validation complete",
		"service_id", rs.ServiceID,
		"valid", result.Valid,
		"passed", len(result.Passed),
		"failed", len(result.Failed),
		"skipped", len(result.Skipped),
		"duration_ms", result.DurationMS,
	)

	if e.metrics != nil {
		e.metrics.RecordValidation(rs.ServiceID, result.Valid, time.Since(start))
		e.metrics.RecordOutcomes(rs.ServiceID, len(result.Passed), len(result.Failed), len(result.Skipped))
	}

	if e.config.LogEvents {
		event := result.Event()
		e.auditor.Append(event)
		if e.config.EventCallback != nil {
			e.config.EventCallback(event)
		}
	}

	return result, nil
}
