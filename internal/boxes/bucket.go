package boxes

import "fmt"

type bucketSolver struct {
	maxCapacity int
	strict      bool
}

// NewBucketGreedy creates a Solver that counts boxes per capacity and consumes
// them from the largest capacity down, several boxes at a time. Capacities must
// not exceed the configured maximum (DefaultMaxCapacity unless WithMaxCapacity
// is given); larger values are rejected with ErrCapacityOutOfRange.
func NewBucketGreedy(opts ...Option) Solver {
	o := buildOptions(opts)
	return &bucketSolver{
		maxCapacity: o.maxCapacity,
		strict:      o.strictCapacity,
	}
}

func (s *bucketSolver) Name() Algorithm {
	return BucketGreedy
}

func (s *bucketSolver) MinimumBoxes(apples, capacities []int) (int, error) {
	res, err := s.Solve(apples, capacities)
	return res.Boxes, err
}

func (s *bucketSolver) Solve(apples, capacities []int) (Result, error) {
	demand, err := totalDemand(apples)
	if err != nil {
		return Result{}, err
	}
	freq, maxSeen, err := s.histogram(capacities)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Demand:    demand,
		Selection: make(map[int]int),
	}
	for c := maxSeen; c >= 1 && res.Allotted < demand; c-- {
		count := freq[c]
		if count == 0 {
			continue
		}
		remaining := demand - res.Allotted
		// ceil(remaining / c)
		needed := (remaining + c - 1) / c
		take := min(needed, count)

		res.Selection[c] = take
		res.Allotted += take * c
		res.Boxes += take
	}

	return finish(res, s.strict)
}

// histogram returns freq[c] = number of boxes with capacity c and the largest
// capacity present. freq is sized by the input, not by the solver's bound.
func (s *bucketSolver) histogram(capacities []int) ([]int, int, error) {
	maxSeen := 0
	for i, c := range capacities {
		if c < 1 {
			return nil, 0, fmt.Errorf("%w: capacity[%d] = %d", ErrInvalidCapacity, i, c)
		}
		if c > s.maxCapacity {
			return nil, 0, fmt.Errorf("%w: capacity[%d] = %d, maximum %d", ErrCapacityOutOfRange, i, c, s.maxCapacity)
		}
		maxSeen = max(maxSeen, c)
	}

	freq := make([]int, maxSeen+1)
	for _, c := range capacities {
		freq[c]++
	}
	return freq, maxSeen, nil
}
