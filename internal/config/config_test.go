package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"

	"github.com/eugenenazirov/apple-boxes/internal/boxes"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envAlgorithm, envMaxCapacity, envStrictCapacity, envCrossCheck, envLogLevel} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg != Default() {
		t.Fatalf("expected defaults %+v, got %+v", Default(), cfg)
	}
	if cfg.Algorithm != boxes.GreedySort {
		t.Fatalf("expected default algorithm %s, got %s", boxes.GreedySort, cfg.Algorithm)
	}
	if cfg.MaxCapacity != boxes.DefaultMaxCapacity {
		t.Fatalf("unexpected max capacity: %d", cfg.MaxCapacity)
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAlgorithm, "bucket")
	t.Setenv(envMaxCapacity, " 100 ")
	t.Setenv(envStrictCapacity, "true")
	t.Setenv(envCrossCheck, "1")
	t.Setenv(envLogLevel, "debug")

	cfg, err := Load(&Overrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := Config{
		Algorithm:      boxes.BucketGreedy,
		MaxCapacity:    100,
		StrictCapacity: true,
		CrossCheck:     true,
		LogLevel:       "debug",
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAlgorithm, "greedy-sort")
	t.Setenv(envMaxCapacity, "60")
	t.Setenv(envLogLevel, "warn")

	path := writeConfigFile(t, `
algorithm: bucket
max_capacity: 80
strict_capacity: true
`)

	t.Run("yaml over environment", func(t *testing.T) {
		cfg, err := Load(&Overrides{ConfigFile: path})
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.Algorithm != boxes.BucketGreedy || cfg.MaxCapacity != 80 || !cfg.StrictCapacity {
			t.Fatalf("expected YAML values to win, got %+v", cfg)
		}
		if cfg.LogLevel != "warn" {
			t.Fatalf("expected log level from environment, got %s", cfg.LogLevel)
		}
	})

	t.Run("overrides over yaml", func(t *testing.T) {
		alg := "greedy-sort"
		maxCapacity := 20
		strict := false
		cfg, err := Load(&Overrides{
			ConfigFile:     path,
			Algorithm:      &alg,
			MaxCapacity:    &maxCapacity,
			StrictCapacity: &strict,
		})
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.Algorithm != boxes.GreedySort || cfg.MaxCapacity != 20 || cfg.StrictCapacity {
			t.Fatalf("expected overrides to win, got %+v", cfg)
		}
	})
}

func TestLoadInvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(envMaxCapacity, "fifty")
	t.Setenv(envStrictCapacity, "maybe")

	_, err := Load(nil)
	if err == nil {
		t.Fatalf("expected error for malformed environment")
	}
	if got := len(multierr.Errors(errors.Unwrap(err))); got != 2 {
		t.Fatalf("expected 2 aggregated errors, got %d: %v", got, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&Overrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "max_capacity: [1, 2")

	if _, err := Load(&Overrides{ConfigFile: path}); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		if err := Default().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("collects every violation", func(t *testing.T) {
		t.Parallel()
		cfg := Config{Algorithm: "quantum", MaxCapacity: 0, LogLevel: "loud"}
		err := cfg.Validate()
		if got := len(multierr.Errors(err)); got != 3 {
			t.Fatalf("expected 3 errors, got %d: %v", got, err)
		}
		if !errors.Is(err, boxes.ErrUnknownAlgorithm) {
			t.Fatalf("expected ErrUnknownAlgorithm in %v", err)
		}
	})
}

func TestValidateMaxCapacityRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maxCapacity int
		wantErr     bool
	}{
		{name: "Zero", maxCapacity: 0, wantErr: true},
		{name: "One", maxCapacity: 1},
		{name: "Supported", maxCapacity: boxes.MaxSupportedCapacity},
		{name: "AboveSupported", maxCapacity: boxes.MaxSupportedCapacity + 1, wantErr: true},
		{name: "MaxInt", maxCapacity: math.MaxInt, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.MaxCapacity = tc.maxCapacity
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}

			solver := boxes.NewBucketGreedy(cfg.SolverOptions()...)
			if got, err := solver.MinimumBoxes([]int{1}, []int{1}); err != nil || got != 1 {
				t.Fatalf("expected 1 box for a validated config, got %d, %v", got, err)
			}
		})
	}
}

func TestSolverOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.MaxCapacity = 10
	cfg.StrictCapacity = true

	solver := boxes.NewBucketGreedy(cfg.SolverOptions()...)
	if _, err := solver.Solve([]int{1}, []int{11}); !errors.Is(err, boxes.ErrCapacityOutOfRange) {
		t.Fatalf("expected max capacity option to apply, got %v", err)
	}
	if _, err := solver.Solve([]int{30}, []int{10}); !errors.Is(err, boxes.ErrInsufficientCapacity) {
		t.Fatalf("expected strict option to apply, got %v", err)
	}
}
