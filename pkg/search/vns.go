package search

import "context"

// VariableNeighbourhoodSearch cycles through an ordered list of
// neighbourhoods of increasing "strength". Each step it shakes the current
// solution with one random move from the active neighbourhood, then hill-
// climbs from there using LocalNeighbourhood until no move improves. If the
// result beats the current solution, it is accepted and the active
// neighbourhood resets to the first (smallest); otherwise the search
// advances to the next neighbourhood in the list, wrapping back to the
// first once the last has been tried. Like RandomDescent, it never
// terminates naturally.
type VariableNeighbourhoodSearch[S Solution[S], D any] struct {
	Neighbourhoods     []Neighbourhood[S]
	LocalNeighbourhood Neighbourhood[S]

	activeIdx int
}

// NewVariableNeighbourhoodSearch returns a VNS algorithm shaking with each
// of neighbourhoods in turn and hill-climbing with local after every shake.
func NewVariableNeighbourhoodSearch[S Solution[S], D any](neighbourhoods []Neighbourhood[S], local Neighbourhood[S]) *VariableNeighbourhoodSearch[S, D] {
	return &VariableNeighbourhoodSearch[S, D]{Neighbourhoods: neighbourhoods, LocalNeighbourhood: local}
}

func (a *VariableNeighbourhoodSearch[S, D]) SupportsCurrentSolution() bool { return true }

func (a *VariableNeighbourhoodSearch[S, D]) Step(ctx context.Context, s *Search[S, D]) (bool, error) {
	if len(a.Neighbourhoods) == 0 {
		return false, nil
	}

	candidate := s.CurrentSolution().Copy()
	problem := s.Problem()

	m, ok := a.Neighbourhoods[a.activeIdx].RandomMove(candidate, s.RNG())
	if ok {
		valid, err := problem.ValidateDelta(m, candidate, problem.Validate(candidate))
		if err != nil {
			return false, err
		}
		if valid.Passed() {
			if err := m.Apply(candidate); err != nil {
				return false, err
			}
		}
	}

	candEval := problem.Evaluate(candidate)
	candValid := problem.Validate(candidate)
	if candValid.Passed() {
		candidate, candEval, candValid = hillClimb(ctx, problem, a.LocalNeighbourhood, candidate, candEval)
	}

	if candValid.Passed() && problem.IsBetterThan(candEval, s.CurrentEvaluation()) {
		s.ReplaceCurrentSolution(candidate, candEval, candValid)
		a.activeIdx = 0
	} else {
		a.activeIdx = (a.activeIdx + 1) % len(a.Neighbourhoods)
	}
	return true, nil
}

// hillClimb repeatedly applies the best improving move from n to sol,
// operating directly through problem (bypassing a Search's move cache and
// current-solution tracking) until no move improves further.
func hillClimb[S any, D any](ctx context.Context, problem Problem[S, D], n Neighbourhood[S], sol S, eval Evaluation) (S, Evaluation, Validation) {
	valid := problem.Validate(sol)
	for {
		if ctx.Err() != nil {
			return sol, eval, valid
		}
		moves := n.AllMoves(sol)
		var bestMove Move[S]
		var bestEval Evaluation
		var bestValid Validation
		haveBest := false
		for _, m := range moves {
			v, err := problem.ValidateDelta(m, sol, valid)
			if err != nil || !v.Passed() {
				continue
			}
			e, err := problem.EvaluateDelta(m, sol, eval)
			if err != nil {
				continue
			}
			if !haveBest || problem.IsBetterThan(e, bestEval) {
				bestMove, bestEval, bestValid, haveBest = m, e, v, true
			}
		}
		if !haveBest || !problem.IsBetterThan(bestEval, eval) {
			return sol, eval, valid
		}
		if err := bestMove.Apply(sol); err != nil {
			return sol, eval, valid
		}
		eval, valid = bestEval, bestValid
	}
}
