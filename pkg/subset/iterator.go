package subset

import (
	"fmt"

	"github.com/go-james/james/pkg/search"
	"gonum.org/v1/gonum/stat/combin"
)

// revolvingDoorKey memoizes revolvingDoorCombinations calls so the
// recursive construction below does O(n·k) distinct subproblems instead of
// recomputing the same (n,k) pair exponentially many times across
// branches, the way a naive memo-less Fibonacci does.
type revolvingDoorKey struct{ n, k int }

// revolvingDoorCombinations returns every k-subset of {0,...,n-1}, as
// index slices, in Kreher-Stinson revolving-door (minimum-change) order:
// consecutive subsets differ by the exchange of exactly one element. It
// implements the standard recursive construction (Nijenhuis & Wilf;
// Kreher & Stinson, "Combinatorial Algorithms", 1998): the k-subsets
// containing n-1 (each extended from a (k-1)-subset of {0,...,n-2}, in
// order) followed by the k-subsets not containing n-1 (the (n-1,k)
// subsets, visited in reverse) — the reversal at the junction is exactly
// what keeps the single-element-exchange property across the boundary.
//
// That construction visits {0,...,k-1} last rather than first. It also
// closes into a cycle on the Johnson graph: the wrap-around pair (last
// element back to first) is itself a single-element exchange, not just
// the interior consecutive pairs. So the sequence is rotated to start
// at {0,...,k-1}, the lexicographically smallest k-subset, without
// disturbing the minimum-change property anywhere, including at the
// new join.
func revolvingDoorCombinations(n, k int) [][]int {
	memo := make(map[revolvingDoorKey][][]int)
	var build func(n, k int) [][]int
	build = func(n, k int) [][]int {
		if k < 0 || k > n {
			return nil
		}
		if k == 0 {
			return [][]int{{}}
		}
		if k == n {
			full := make([]int, n)
			for i := range full {
				full[i] = i
			}
			return [][]int{full}
		}
		key := revolvingDoorKey{n, k}
		if cached, ok := memo[key]; ok {
			return cached
		}
		withLast := build(n-1, k-1)
		without := build(n-1, k)
		out := make([][]int, 0, len(withLast)+len(without))
		for _, c := range withLast {
			nc := make([]int, len(c)+1)
			copy(nc, c)
			nc[len(c)] = n - 1
			out = append(out, nc)
		}
		for i := len(without) - 1; i >= 0; i-- {
			out = append(out, without[i])
		}
		memo[key] = out
		return out
	}
	return rotateToLexFirst(build(n, k), k)
}

// rotateToLexFirst cyclically rotates a revolving-door sequence of
// k-subsets so that {0,...,k-1} comes first, rather than wherever the
// recursive construction happened to place it. Rotating a cycle only
// changes its starting point, so every consecutive pair — including the
// one newly formed at the rotation point — stays a single-element
// exchange.
func rotateToLexFirst(combos [][]int, k int) [][]int {
	if len(combos) <= 1 {
		return combos
	}
	idx := -1
search:
	for i, c := range combos {
		if len(c) != k {
			continue
		}
		for j, v := range c {
			if v != j {
				continue search
			}
		}
		idx = i
		break
	}
	if idx <= 0 {
		return combos
	}
	rotated := make([][]int, 0, len(combos))
	rotated = append(rotated, combos[idx:]...)
	rotated = append(rotated, combos[:idx]...)
	return rotated
}

// SubsetIterator yields every subset of sizes in [minSize, maxSize] of a
// fixed universe exactly once, in revolving-door order within each size
// class (consecutive subsets of the same size differ by one element
// exchange). It is not restartable.
type SubsetIterator struct {
	universe []int
	combos   [][]int
	pos      int
}

// NewSubsetIterator builds a SubsetIterator over universe for sizes in
// [minSize, maxSize] (1 <= minSize <= maxSize <= len(universe)). The total
// number of subsets it will yield is Σ C(|universe|,s) for s in
// [minSize,maxSize], pre-sized here via gonum's binomial coefficient so
// the backing slice is allocated once.
func NewSubsetIterator(universe []int, minSize, maxSize int) *SubsetIterator {
	n := len(universe)
	total := 0
	for size := minSize; size <= maxSize; size++ {
		total += int(combin.Binomial(n, size))
	}
	combos := make([][]int, 0, total)
	for size := minSize; size <= maxSize; size++ {
		for _, idx := range revolvingDoorCombinations(n, size) {
			ids := make([]int, len(idx))
			for i, j := range idx {
				ids[i] = universe[j]
			}
			combos = append(combos, ids)
		}
	}
	return &SubsetIterator{universe: universe, combos: combos}
}

// HasNext reports whether any subset remains.
func (it *SubsetIterator) HasNext() bool { return it.pos < len(it.combos) }

// Next returns the next subset, or ErrNoSuchElement once exhausted.
func (it *SubsetIterator) Next() ([]int, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("%w: subset iterator exhausted", search.ErrNoSuchElement)
	}
	c := it.combos[it.pos]
	it.pos++
	return c, nil
}

// solutionIterator adapts a SubsetIterator into a search.SolutionIterator
// of *Solution, for use with search.ExhaustiveSearch.
type solutionIterator struct {
	inner    *SubsetIterator
	universe []int
	sorted   bool
}

// NewSolutionIterator builds the search.SolutionIterator ExhaustiveSearch
// drives: every subset of universe with size in [minSize,maxSize], each
// wrapped as a *Solution.
func NewSolutionIterator(universe []int, minSize, maxSize int, sorted bool) search.SolutionIterator[*Solution] {
	return &solutionIterator{
		inner:    NewSubsetIterator(universe, minSize, maxSize),
		universe: universe,
		sorted:   sorted,
	}
}

func (it *solutionIterator) HasNext() bool { return it.inner.HasNext() }

func (it *solutionIterator) Next() (*Solution, error) {
	ids, err := it.inner.Next()
	if err != nil {
		return nil, err
	}
	return NewSolution(it.universe, ids, it.sorted), nil
}

var _ search.SolutionIterator[*Solution] = (*solutionIterator)(nil)
