// Package boxes computes the minimum number of boxes needed to hold a set of
// apple packs when apples may be split freely between boxes. Only the total
// capacity of the chosen boxes matters, so taking the largest boxes first is
// optimal. Two solvers implement this: one sorts the capacities, the other
// walks a bounded capacity histogram and never sorts.
package boxes
