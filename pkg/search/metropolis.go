package search

import (
	"context"
	"math"
)

// Metropolis samples a random move each step and always accepts it if it
// improves the current solution; a worsening move is still accepted with
// probability exp(-|delta|/Temperature), the classic Metropolis criterion.
// A higher Temperature accepts worsening moves more readily. Like
// RandomDescent, it never terminates naturally.
type Metropolis[S any, D any] struct {
	Neighbourhood Neighbourhood[S]
	Temperature   float64
}

// NewMetropolis returns a Metropolis algorithm over n at the given
// (constant) temperature.
func NewMetropolis[S any, D any](n Neighbourhood[S], temperature float64) *Metropolis[S, D] {
	return &Metropolis[S, D]{Neighbourhood: n, Temperature: temperature}
}

func (a *Metropolis[S, D]) SupportsCurrentSolution() bool { return true }

func (a *Metropolis[S, D]) Step(ctx context.Context, s *Search[S, D]) (bool, error) {
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
	if a.accept(s, eval) {
		if err := s.AcceptMove(m, eval, valid); err != nil {
			return false, err
		}
	}
	return true, nil
}

// accept implements the Metropolis acceptance criterion: improving moves
// are always accepted, worsening ones accepted with probability
// exp(-|delta|/Temperature).
func (a *Metropolis[S, D]) accept(s *Search[S, D], eval Evaluation) bool {
	if s.Problem().IsBetterThan(eval, s.CurrentEvaluation()) {
		return true
	}
	if a.Temperature <= 0 {
		return false
	}
	delta := math.Abs(eval.Value() - s.CurrentEvaluation().Value())
	p := math.Exp(-delta / a.Temperature)
	return s.RNG().Float64() < p
}
