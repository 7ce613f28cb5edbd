package search

import "context"

// RandomSearch generates an entirely new random solution each step and
// reports it as a best-ever candidate; it keeps no notion of a "current"
// solution between steps. It never terminates naturally.
type RandomSearch[S any, D any] struct{}

// NewRandomSearch returns a RandomSearch algorithm.
func NewRandomSearch[S any, D any]() *RandomSearch[S, D] { return &RandomSearch[S, D]{} }

func (a *RandomSearch[S, D]) SupportsCurrentSolution() bool { return false }

func (a *RandomSearch[S, D]) Step(ctx context.Context, s *Search[S, D]) (bool, error) {
	problem := s.Problem()
	sol := problem.CreateRandomSolution(s.RNG())
	eval := problem.Evaluate(sol)
	valid := problem.Validate(sol)
	s.ConsiderForBestEver(sol, eval, valid)
	return true, nil
}
