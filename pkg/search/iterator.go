package search

// SolutionIterator produces a finite (or, in principle, infinite) sequence
// of solutions for ExhaustiveSearch to evaluate one at a time. Next
// returns ErrNoSuchElement once the sequence is drained.
type SolutionIterator[S any] interface {
	HasNext() bool
	Next() (S, error)
}
