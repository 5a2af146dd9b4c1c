package boxes

import (
	"cmp"
	"slices"
)

type greedySolver struct {
	strict bool
}

// NewGreedySort creates a Solver that sorts capacities in descending order and
// takes the largest boxes first. WithMaxCapacity has no effect on it.
func NewGreedySort(opts ...Option) Solver {
	o := buildOptions(opts)
	return &greedySolver{strict: o.strictCapacity}
}

// MinimumBoxes returns the number of boxes the greedy solver picks for the given
// apples and capacities. Invalid input is not reported; if the boxes cannot hold
// every apple the total number of boxes is returned.
func MinimumBoxes(apples, capacities []int) int {
	demand := 0
	for _, a := range apples {
		demand += a
	}
	used, _ := greedyScan(demand, capacities)
	return used
}

func (s *greedySolver) Name() Algorithm {
	return GreedySort
}

func (s *greedySolver) MinimumBoxes(apples, capacities []int) (int, error) {
	res, err := s.Solve(apples, capacities)
	return res.Boxes, err
}

func (s *greedySolver) Solve(apples, capacities []int) (Result, error) {
	demand, err := totalDemand(apples)
	if err != nil {
		return Result{}, err
	}
	if err := validateCapacities(capacities); err != nil {
		return Result{}, err
	}

	used, sorted := greedyScan(demand, capacities)

	res := Result{
		Boxes:     used,
		Demand:    demand,
		Selection: make(map[int]int),
	}
	for _, c := range sorted[:used] {
		res.Selection[c]++
		res.Allotted += c
	}
	return finish(res, s.strict)
}

// greedyScan sorts a copy of capacities descending and returns how many of the
// leading boxes are needed to reach demand, together with the sorted copy.
func greedyScan(demand int, capacities []int) (int, []int) {
	if demand <= 0 {
		return 0, nil
	}

	sorted := slices.Clone(capacities)
	slices.SortFunc(sorted, func(a, b int) int {
		return cmp.Compare(b, a)
	})

	current := 0
	for i, c := range sorted {
		current += c
		if current >= demand {
			return i + 1, sorted
		}
	}
	return len(sorted), sorted
}
