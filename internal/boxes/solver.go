package boxes

import "fmt"

// DefaultMaxCapacity is the largest capacity the bucket solver accepts unless
// overridden with WithMaxCapacity.
const DefaultMaxCapacity = 50

// MaxSupportedCapacity is the largest histogram bound a bucket solver can be
// configured with.
const MaxSupportedCapacity = 1 << 20

type options struct {
	maxCapacity    int
	strictCapacity bool
}

// Option configures a Solver.
type Option func(*options)

// WithMaxCapacity sets the histogram bound used by the bucket solver.
// Values below 1 keep the default; values above MaxSupportedCapacity are capped.
func WithMaxCapacity(maxCapacity int) Option {
	return func(o *options) {
		if maxCapacity >= 1 {
			o.maxCapacity = min(maxCapacity, MaxSupportedCapacity)
		}
	}
}

// WithStrictCapacity makes Solve return ErrInsufficientCapacity when the boxes
// cannot hold every apple. By default the solver reports that every box is used.
func WithStrictCapacity(strict bool) Option {
	return func(o *options) {
		o.strictCapacity = strict
	}
}

func buildOptions(opts []Option) options {
	o := options{maxCapacity: DefaultMaxCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the solver registered under alg.
func New(alg Algorithm, opts ...Option) (Solver, error) {
	switch alg {
	case GreedySort:
		return NewGreedySort(opts...), nil
	case BucketGreedy:
		return NewBucketGreedy(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

// ParseAlgorithm resolves a configured algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, alg := range Algorithms() {
		if string(alg) == name {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

func totalDemand(apples []int) (int, error) {
	demand := 0
	for i, a := range apples {
		if a < 0 {
			return 0, fmt.Errorf("%w: apple[%d] = %d", ErrInvalidApples, i, a)
		}
		demand += a
	}
	return demand, nil
}

func validateCapacities(capacities []int) error {
	for i, c := range capacities {
		if c < 1 {
			return fmt.Errorf("%w: capacity[%d] = %d", ErrInvalidCapacity, i, c)
		}
	}
	return nil
}

// finish fills the derived fields and applies the insufficiency policy.
func finish(res Result, strict bool) (Result, error) {
	res.Sufficient = res.Allotted >= res.Demand
	if !res.Sufficient && strict {
		return res, fmt.Errorf("%w: need %d, have %d", ErrInsufficientCapacity, res.Demand, res.Allotted)
	}
	return res, nil
}
