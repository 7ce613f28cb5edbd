package search

import "context"

// TabuMemory tracks recently applied moves (or the solution features they
// touched) so TabuSearch can forbid immediately reversing them. Register is
// called once per accepted step with the move that was applied and the
// solution it was applied to (before mutation); IsTabu is queried against
// every candidate move during the following steps until the memory itself
// expires the entry.
type TabuMemory[S any] interface {
	IsTabu(m Move[S], s S) bool
	Register(m Move[S], s S)
	Clear()
}

// TabuSearch enumerates every move reachable from the current solution
// each step and applies the best one that is either not tabu or satisfies
// the aspiration criterion (it would beat the best-ever solution found so
// far). It terminates naturally (Step returns false) only once no move in
// the neighbourhood is both valid and admissible — each one is invalid, or
// tabu and failing aspiration; otherwise it keeps moving to the least-worst admissible move
// to escape local optima, so it is normally run under
// MaxSteps/MaxRuntime/MaxStepsWithoutImprovement rather than left to stop
// on its own.
type TabuSearch[S any, D any] struct {
	Neighbourhood Neighbourhood[S]
	Memory        TabuMemory[S]
}

// NewTabuSearch returns a TabuSearch algorithm over n, using memory to
// track forbidden moves.
func NewTabuSearch[S any, D any](n Neighbourhood[S], memory TabuMemory[S]) *TabuSearch[S, D] {
	return &TabuSearch[S, D]{Neighbourhood: n, Memory: memory}
}

func (a *TabuSearch[S, D]) SupportsCurrentSolution() bool { return true }

func (a *TabuSearch[S, D]) Step(ctx context.Context, s *Search[S, D]) (bool, error) {
	current := s.CurrentSolution()
	moves := a.Neighbourhood.AllMoves(current)

	var bestMove Move[S]
	var bestEval Evaluation
	var bestValid Validation
	haveBest := false

	bestEverValue, haveBestEver := s.BestEverEvaluationValue()

	for _, m := range moves {
		if ctx.Err() != nil {
			return false, nil
		}
		eval, valid, err := s.EvaluateMove(m)
		if err != nil {
			return false, err
		}
		if !valid.Passed() {
			continue
		}
		if a.Memory.IsTabu(m, current) {
			aspirated := haveBestEver && s.Problem().IsBetterThan(eval, simpleEvaluationOf(bestEverValue))
			if !aspirated {
				continue
			}
		}
		if !haveBest || s.Problem().IsBetterThan(eval, bestEval) {
			bestMove, bestEval, bestValid, haveBest = m, eval, valid, true
		}
	}

	if !haveBest {
		return false, nil
	}

	a.Memory.Register(bestMove, current)
	if err := s.AcceptMove(bestMove, bestEval, bestValid); err != nil {
		return false, err
	}
	return true, nil
}

// simpleEvaluationOf wraps a bare float64 for comparison through
// Problem.IsBetterThan, which only ever inspects Value().
func simpleEvaluationOf(v float64) Evaluation { return NewSimpleEvaluation(v) }
