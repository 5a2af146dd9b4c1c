// Package application provides dependency wiring for embedding programs.
// It builds the configured solver, the optional cross-check solver, metrics
// and logging from a config.Config so callers only deal with App.Solve.
package application
