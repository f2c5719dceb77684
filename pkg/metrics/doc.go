// Package metrics exposes Prometheus instrumentation for the spec layer:
// validation outcomes, store writes and optimistic-concurrency conflicts.
package metrics
