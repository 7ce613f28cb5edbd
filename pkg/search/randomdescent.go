package search

import "context"

// RandomDescent repeatedly samples a single random move from a
// Neighbourhood and accepts it whenever it is a valid improvement over the
// current solution. It never terminates on its own — it runs until a
// StopCriterion fires — so it is always paired with at least MaxSteps or
// MaxRuntime.
type RandomDescent[S any, D any] struct {
	Neighbourhood Neighbourhood[S]
}

// NewRandomDescent returns a RandomDescent algorithm sampling moves from n.
func NewRandomDescent[S any, D any](n Neighbourhood[S]) *RandomDescent[S, D] {
	return &RandomDescent[S, D]{Neighbourhood: n}
}

func (a *RandomDescent[S, D]) SupportsCurrentSolution() bool { return true }

func (a *RandomDescent[S, D]) Step(ctx context.Context, s *Search[S, D]) (bool, error) {
	m, ok := a.Neighbourhood.RandomMove(s.CurrentSolution(), s.RNG())
	if !ok {
		return true, nil
	}
	eval, valid, err := s.EvaluateMove(m)
	if err != nil {
		return false, err
	}
	if !valid.Passed() {
		return true, nil
	}
	if s.Problem().IsBetterThan(eval, s.CurrentEvaluation()) {
		if err := s.AcceptMove(m, eval, valid); err != nil {
			return false, err
		}
	}
	return true, nil
}
