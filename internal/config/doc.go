// Package config loads solver settings from multiple sources (YAML files,
// environment variables, programmatic overrides) with precedence: Overrides >
// YAML config > Environment variables > Defaults. It exposes strongly typed
// settings to the rest of the application.
package config
