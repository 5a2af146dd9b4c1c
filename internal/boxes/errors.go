package boxes

import "errors"

var (
	// ErrInvalidApples is returned when an apple count is negative.
	ErrInvalidApples = errors.New("apple counts must be non-negative integers")
	// ErrInvalidCapacity is returned when a box capacity is not a positive integer.
	ErrInvalidCapacity = errors.New("box capacities must be positive integers")
	// ErrCapacityOutOfRange is returned by the bucket solver when a capacity exceeds its histogram bound.
	ErrCapacityOutOfRange = errors.New("box capacity exceeds the supported maximum")
	// ErrInsufficientCapacity is returned in strict mode when all boxes together cannot hold every apple.
	ErrInsufficientCapacity = errors.New("total box capacity is smaller than the number of apples")
	// ErrUnknownAlgorithm is returned when no solver is registered under the requested name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)
