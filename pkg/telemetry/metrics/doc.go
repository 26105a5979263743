// Package metrics exposes Prometheus metrics for the eligibility engine:
// validation counts by service and overall outcome, per-outcome rule
// tallies, and an evaluation duration histogram. Handler mounts the standard
// promhttp exposition endpoint.
package metrics
