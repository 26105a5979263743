package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ValidationMetrics tracks metrics for ruleset evaluation.
//
// Metrics:
//   - verdict_validations_total: total validations by service and validity
//   - verdict_validation_duration_seconds: evaluation duration histogram
//   - verdict_rule_outcomes_total: rule outcome counts by service and class
type ValidationMetrics struct {
	validationsTotal   *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
	ruleOutcomesTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewValidationMetrics creates and registers validation metrics with the
// provided registry. A nil registry creates a fresh one.
func NewValidationMetrics(namespace string, registry *prometheus.Registry) *ValidationMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "verdict"
	}

	vm := &ValidationMetrics{
		registry: registry,

		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of ruleset validations",
			},
			[]string{"service_id", "valid"},
		),

		validationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of ruleset validation in seconds",
				// Tree walks are fast; buckets span 1µs to 16ms.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15),
			},
			[]string{"service_id"},
		),

		ruleOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_outcomes_total",
				Help:      "Rule outcome counts by classification",
			},
			[]string{"service_id", "outcome"},
		),
	}

	registry.MustRegister(
		vm.validationsTotal,
		vm.validationDuration,
		vm.ruleOutcomesTotal,
	)

	return vm
}

// Registry returns the underlying Prometheus registry for mounting the
// exposition handler.
func (vm *ValidationMetrics) Registry() *prometheus.Registry {
	return vm.registry
}

// RecordValidation records one validation call.
func (vm *ValidationMetrics) RecordValidation(serviceID string, valid bool, duration time.Duration) {
	vm.validationsTotal.WithLabelValues(serviceID, strconv.FormatBool(valid)).Inc()
	vm.validationDuration.WithLabelValues(serviceID).Observe(duration.Seconds())
}

// RecordOutcomes records the per-rule outcome tallies of one validation.
func (vm *ValidationMetrics) RecordOutcomes(serviceID string, passed, failed, skipped int) {
	vm.ruleOutcomesTotal.WithLabelValues(serviceID, "passed").Add(float64(passed))
	vm.ruleOutcomesTotal.WithLabelValues(serviceID, "failed").Add(float64(failed))
	vm.ruleOutcomesTotal.WithLabelValues(serviceID, "skipped").Add(float64(skipped))
}
