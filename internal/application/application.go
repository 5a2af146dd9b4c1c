package application

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/eugenenazirov/apple-boxes/internal/boxes"
	"github.com/eugenenazirov/apple-boxes/internal/config"
	"github.com/eugenenazirov/apple-boxes/internal/metrics"
)

// ErrAlgorithmsDisagree is returned when cross-checking is enabled and the two
// solvers produce different selections for the same input.
var ErrAlgorithmsDisagree = errors.New("solvers returned different results")

// App encapsulates the configured solver together with its logging and metrics.
type App struct {
	solver    boxes.Solver
	reference boxes.Solver
	metrics   *metrics.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures App behaviour.
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
	now        func() time.Time
}

// WithRegisterer registers the solver metrics with reg. Without it the metrics
// are collected but not registered anywhere.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithClock overrides the time source used to measure solve latency, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	solver, err := boxes.New(cfg.Algorithm, cfg.SolverOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create solver: %w", err)
	}

	var reference boxes.Solver
	if cfg.CrossCheck {
		reference, err = boxes.New(counterpart(cfg.Algorithm), cfg.SolverOptions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create reference solver: %w", err)
		}
	}

	recorder, err := metrics.NewRecorder(o.registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	logger.Info("solver initialized",
		zap.String("algorithm", string(solver.Name())),
		zap.Int("max_capacity", cfg.MaxCapacity),
		zap.Bool("strict_capacity", cfg.StrictCapacity),
		zap.Bool("cross_check", cfg.CrossCheck),
	)

	return &App{
		solver:    solver,
		reference: reference,
		metrics:   recorder,
		logger:    logger,
		now:       o.now,
	}, nil
}

// Solver returns the configured solver.
func (a *App) Solver() boxes.Solver {
	return a.solver
}

// MinimumBoxes returns the minimum number of boxes needed for the apples.
func (a *App) MinimumBoxes(apples, capacities []int) (int, error) {
	res, err := a.Solve(apples, capacities)
	return res.Boxes, err
}

// Solve runs the configured solver, records metrics and logs the outcome.
// The returned Result is populated whenever the input was valid, including
// when strict capacity checking reports ErrInsufficientCapacity.
func (a *App) Solve(apples, capacities []int) (boxes.Result, error) {
	alg := string(a.solver.Name())

	start := a.now()
	res, err := a.solver.Solve(apples, capacities)
	elapsed := a.now().Sub(start)

	outcome := outcomeOf(res, err)
	a.metrics.ObserveSolve(alg, outcome, res.Boxes, elapsed)

	switch outcome {
	case metrics.OutcomeInvalid:
		a.logger.Info("solve rejected", zap.String("algorithm", alg), zap.Error(err))
		return boxes.Result{}, err
	case metrics.OutcomeInsufficient:
		a.logger.Warn("box capacity insufficient",
			zap.String("algorithm", alg),
			zap.Int("demand", res.Demand),
			zap.Int("allotted", res.Allotted),
			zap.Int("boxes", res.Boxes),
		)
	default:
		a.logger.Debug("solve completed",
			zap.String("algorithm", alg),
			zap.Int("packs", len(apples)),
			zap.Int("available_boxes", len(capacities)),
			zap.Int("demand", res.Demand),
			zap.Int("boxes", res.Boxes),
			zap.Duration("duration", elapsed),
		)
	}

	if a.reference != nil {
		if checkErr := a.crossCheck(apples, capacities, res); checkErr != nil {
			return res, checkErr
		}
	}

	return res, err
}

func (a *App) crossCheck(apples, capacities []int, want boxes.Result) error {
	got, err := a.reference.Solve(apples, capacities)
	switch {
	case errors.Is(err, boxes.ErrCapacityOutOfRange):
		a.logger.Debug("cross-check skipped", zap.String("reason", err.Error()))
		return nil
	case err != nil && !errors.Is(err, boxes.ErrInsufficientCapacity):
		return fmt.Errorf("cross-check with %s: %w", a.reference.Name(), err)
	}

	if got.Boxes == want.Boxes && maps.Equal(got.Selection, want.Selection) {
		return nil
	}

	a.logger.Warn("solvers disagree",
		zap.String("algorithm", string(a.solver.Name())),
		zap.String("reference", string(a.reference.Name())),
		zap.Int("boxes", want.Boxes),
		zap.Int("reference_boxes", got.Boxes),
		zap.Ints("apples", apples),
		zap.Ints("capacities", capacities),
	)
	return fmt.Errorf("%w: %s chose %d boxes, %s chose %d",
		ErrAlgorithmsDisagree, a.solver.Name(), want.Boxes, a.reference.Name(), got.Boxes)
}

func outcomeOf(res boxes.Result, err error) string {
	switch {
	case errors.Is(err, boxes.ErrInsufficientCapacity):
		return metrics.OutcomeInsufficient
	case err != nil:
		return metrics.OutcomeInvalid
	case !res.Sufficient:
		return metrics.OutcomeInsufficient
	default:
		return metrics.OutcomeOK
	}
}

// counterpart returns the algorithm used to cross-check alg.
func counterpart(alg boxes.Algorithm) boxes.Algorithm {
	if alg == boxes.BucketGreedy {
		return boxes.GreedySort
	}
	return boxes.BucketGreedy
}
