// Package metrics exposes Prometheus collectors describing solver activity.
// Collectors are registered against a caller-supplied registerer; exposing
// them over HTTP is left to the embedding program.
package metrics
