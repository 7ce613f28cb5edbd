package search

import "context"

// ExhaustiveSearch draws one solution per step from a SolutionIterator,
// evaluates and validates it, and reports it as a best-ever candidate. It
// terminates naturally (Step returns false) on the step that draws the
// last solution, or on the first step if the iterator is empty, at which
// point the best-ever solution recorded is guaranteed optimal
// over the entire space the iterator enumerated.
type ExhaustiveSearch[S any, D any] struct {
	Iterator SolutionIterator[S]
}

// NewExhaustiveSearch returns an ExhaustiveSearch algorithm drawing
// candidates from it.
func NewExhaustiveSearch[S any, D any](it SolutionIterator[S]) *ExhaustiveSearch[S, D] {
	return &ExhaustiveSearch[S, D]{Iterator: it}
}

func (a *ExhaustiveSearch[S, D]) SupportsCurrentSolution() bool { return false }

func (a *ExhaustiveSearch[S, D]) Step(ctx context.Context, s *Search[S, D]) (bool, error) {
	if !a.Iterator.HasNext() {
		return false, nil
	}
	sol, err := a.Iterator.Next()
	if err != nil {
		return false, err
	}
	problem := s.Problem()
	eval := problem.Evaluate(sol)
	valid := problem.Validate(sol)
	s.ConsiderForBestEver(sol, eval, valid)
	return a.Iterator.HasNext(), nil
}
