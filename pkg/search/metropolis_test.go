package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetropolisAlwaysAcceptsImprovingMoves(t *testing.T) {
	problem := newCounterProblem(20)
	algo := NewMetropolis[*counterSolution, counterData](incrementNeighbourhood{}, 0)
	s := NewSearch[*counterSolution, counterData]("metro-zero-temp", problem, algo,
		WithSeed[*counterSolution, counterData](3),
		WithInitialSolution[*counterSolution, counterData](&counterSolution{v: 0}),
	)
	_, err := s.AddStopCriterion(MaxSteps(500))
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))

	best, ok := s.BestSolution()
	require.True(t, ok)
	assert.Equal(t, 20, best.v, "at temperature 0, metropolis degenerates to always-improving acceptance")
}

func TestMetropolisSupportsCurrentSolution(t *testing.T) {
	algo := NewMetropolis[*counterSolution, counterData](incrementNeighbourhood{}, 1.0)
	assert.True(t, algo.SupportsCurrentSolution())
}
