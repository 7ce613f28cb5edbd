package subset

import (
	"context"

	"github.com/go-james/james/pkg/search"
)

// LRGreedy builds a solution of exactly TargetSize one round at a time:
// each round performs L greedy single additions and R greedy single
// removals (each step picking whichever single add/remove candidate yields
// the best evaluation), growing toward TargetSize when L>R starting from
// an empty current solution, or shrinking toward it when R>L starting
// from the full universe. It terminates naturally once the current
// solution's size reaches TargetSize.
type LRGreedy[D any] struct {
	L, R       int
	TargetSize int
}

// NewLRGreedy returns an LRGreedy algorithm. The Search it drives must be
// started from an initial solution of the empty selection (when l>r) or
// the full universe (when r>l) via search.WithInitialSolution.
func NewLRGreedy[D any](l, r, targetSize int) *LRGreedy[D] {
	return &LRGreedy[D]{L: l, R: r, TargetSize: targetSize}
}

func (a *LRGreedy[D]) SupportsCurrentSolution() bool { return true }

func (a *LRGreedy[D]) Step(ctx context.Context, s *search.Search[*Solution, D]) (bool, error) {
	if s.CurrentSolution().Size() == a.TargetSize {
		return false, nil
	}

	growing := a.L > a.R
	var ops []func() error
	if growing {
		for i := 0; i < a.L; i++ {
			ops = append(ops, func() error { return a.bestAddition(s) })
		}
		for i := 0; i < a.R; i++ {
			ops = append(ops, func() error { return a.bestRemoval(s) })
		}
	} else {
		for i := 0; i < a.R; i++ {
			ops = append(ops, func() error { return a.bestRemoval(s) })
		}
		for i := 0; i < a.L; i++ {
			ops = append(ops, func() error { return a.bestAddition(s) })
		}
	}

	for _, op := range ops {
		if ctx.Err() != nil {
			return false, nil
		}
		if s.CurrentSolution().Size() == a.TargetSize {
			break
		}
		if err := op(); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (a *LRGreedy[D]) bestAddition(s *search.Search[*Solution, D]) error {
	if s.CurrentSolution().Size() >= a.TargetSize {
		return nil
	}
	problem := s.Problem()
	var bestID int
	var bestEval search.Evaluation
	var bestValid search.Validation
	have := false
	for _, id := range s.CurrentSolution().Unselected() {
		m := NewAddition(id)
		eval, valid, err := s.EvaluateMove(m)
		if err != nil {
			return err
		}
		if !valid.Passed() {
			continue
		}
		if !have || problem.IsBetterThan(eval, bestEval) {
			bestID, bestEval, bestValid, have = id, eval, valid, true
		}
	}
	if !have {
		return nil
	}
	return s.AcceptMove(NewAddition(bestID), bestEval, bestValid)
}

func (a *LRGreedy[D]) bestRemoval(s *search.Search[*Solution, D]) error {
	if s.CurrentSolution().Size() <= a.TargetSize {
		return nil
	}
	problem := s.Problem()
	var bestID int
	var bestEval search.Evaluation
	var bestValid search.Validation
	have := false
	for _, id := range s.CurrentSolution().Selected() {
		m := NewDeletion(id)
		eval, valid, err := s.EvaluateMove(m)
		if err != nil {
			return err
		}
		if !valid.Passed() {
			continue
		}
		if !have || problem.IsBetterThan(eval, bestEval) {
			bestID, bestEval, bestValid, have = id, eval, valid, true
		}
	}
	if !have {
		return nil
	}
	return s.AcceptMove(NewDeletion(bestID), bestEval, bestValid)
}
