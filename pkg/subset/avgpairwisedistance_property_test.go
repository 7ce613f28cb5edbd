package subset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomDistanceMatrix builds a symmetric pairwise distance table over n
// ids drawn from rng, in [0, 10).
func randomDistanceMatrix(n int, rng *rand.Rand) distanceData {
	ids := make([]int, n)
	dist := make(map[[2]int]float64, n*(n-1)/2)
	for i := range ids {
		ids[i] = i
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist[[2]int{i, j}] = rng.Float64() * 10
		}
	}
	return distanceData{ids: ids, dist: dist}
}

// randomMoveFor returns a random admissible move against sol: an addition
// of a random unselected id, a deletion of a random selected id, or (when
// both pools are non-empty) a swap, chosen uniformly among the options
// actually available.
func randomMoveFor(sol *Solution, rng *rand.Rand) *Move {
	sel, unsel := sol.Selected(), sol.Unselected()
	var options []func() *Move
	if len(unsel) > 0 {
		options = append(options, func() *Move { return NewAddition(unsel[rng.Intn(len(unsel))]) })
	}
	if len(sel) > 0 {
		options = append(options, func() *Move { return NewDeletion(sel[rng.Intn(len(sel))]) })
	}
	if len(sel) > 0 && len(unsel) > 0 {
		options = append(options, func() *Move {
			return NewSwap(unsel[rng.Intn(len(unsel))], sel[rng.Intn(len(sel))])
		})
	}
	return options[rng.Intn(len(options))]()
}

// TestAvgPairwiseDistanceDeltaMatchesFullEvaluation is SPEC_FULL.md /
// spec.md §8 scenario 3, literally: over a 50-point random distance
// matrix, for 10000 random (solution, move) pairs, |delta - full| < 1e-9.
func TestAvgPairwiseDistanceDeltaMatchesFullEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	data := randomDistanceMatrix(50, rng)
	objective := avgPairwiseDistanceObjective{}

	for i := 0; i < 10000; i++ {
		size := 2 + rng.Intn(len(data.ids)-2)
		selected := randomSubset(data.ids, size, rng)
		sol := NewSolution(data.ids, selected, true)

		curEval := objective.Evaluate(sol, data)
		m := randomMoveFor(sol, rng)

		deltaEval, err := objective.EvaluateDelta(m, sol, curEval, data)
		require.NoError(t, err)

		require.NoError(t, m.Apply(sol))
		fullEval := objective.Evaluate(sol, data)
		require.NoError(t, m.Undo(sol))

		assert.InDelta(t, fullEval.Value(), deltaEval.Value(), 1e-9)
	}
}
