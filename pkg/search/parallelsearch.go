package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RunParallel starts every child concurrently, waits for all of them to
// stop (naturally, via their own stop criteria, or because ctx was
// cancelled), and returns whichever child produced the best best-ever
// solution. It is "basic" in the sense that children never communicate
// during the run — each is a fully independent Search, typically
// differing only in its random seed or initial solution — which is what
// keeps the fan-out a plain errgroup rather than the replica-exchange
// coordination ParallelTempering needs.
//
// If a child returns an error, RunParallel stops the remaining children
// and returns that error (the errgroup.Group default), after which no
// result is returned.
func RunParallel[S Solution[S], D any](ctx context.Context, children []*Search[S, D]) (S, Evaluation, Validation, error) {
	var zero S
	if len(children) == 0 {
		return zero, nil, nil, fmt.Errorf("%w: RunParallel called with no children", ErrSearch)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, child := range children {
		child := child
		g.Go(func() error {
			return child.Start(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return zero, nil, nil, err
	}

	var bestSol S
	var bestEval Evaluation
	var bestValid Validation
	haveBest := false
	var problem Problem[S, D]

	for _, child := range children {
		sol, ok := child.BestSolution()
		if !ok {
			continue
		}
		eval, _ := child.BestSolutionEvaluation()
		valid, _ := child.BestSolutionValidation()
		if problem == nil {
			problem = child.Problem()
		}
		if !haveBest || problem.IsBetterThan(eval, bestEval) {
			bestSol, bestEval, bestValid, haveBest = sol, eval, valid, true
		}
	}
	if !haveBest {
		return zero, nil, nil, nil
	}
	return bestSol, bestEval, bestValid, nil
}
