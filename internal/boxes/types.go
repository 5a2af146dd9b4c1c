package boxes

// Algorithm names a solving strategy.
type Algorithm string

const (
	// GreedySort sorts capacities descending and accumulates until demand is covered.
	GreedySort Algorithm = "greedy-sort"
	// BucketGreedy scans a bounded capacity histogram instead of sorting.
	BucketGreedy Algorithm = "bucket"
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{GreedySort, BucketGreedy}
}

// Result summarises a single solve.
// Selection maps a capacity to the number of boxes of that capacity that were
// used; Allotted is the combined capacity of those boxes.
type Result struct {
	Boxes      int
	Demand     int
	Allotted   int
	Selection  map[int]int
	Sufficient bool
}

// Solver describes the behaviour required from a box solver.
type Solver interface {
	Name() Algorithm
	Solve(apples, capacities []int) (Result, error)
	MinimumBoxes(apples, capacities []int) (int, error)
}
