package subset

import (
	"context"
	"testing"

	"github.com/go-james/james/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRGreedyGrowsToTargetSizePickingHighestValuesFirst(t *testing.T) {
	universe := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	data := newValueData(universe, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	problem := NewProblem[valueData](data, sumObjective{}, 0, 10, true)

	algo := NewLRGreedy[valueData](1, 0, 3)
	empty := NewSolution(universe, nil, true)
	s := search.NewSearch[*Solution, valueData]("lr-greedy-grow", problem, algo,
		search.WithInitialSolution[*Solution, valueData](empty),
	)

	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, []int{7, 8, 9}, s.CurrentSolution().Selected(), "greedy growth should pick the 3 highest-value ids")
}

func TestLRGreedyShrinksToTargetSizeDroppingLowestValuesFirst(t *testing.T) {
	universe := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	data := newValueData(universe, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	problem := NewProblem[valueData](data, sumObjective{}, 0, 10, true)

	algo := NewLRGreedy[valueData](0, 1, 7)
	full := NewSolution(universe, universe, true)
	s := search.NewSearch[*Solution, valueData]("lr-greedy-shrink", problem, algo,
		search.WithInitialSolution[*Solution, valueData](full),
	)

	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9}, s.CurrentSolution().Selected(), "greedy shrink should drop the 3 lowest-value ids")
}

func TestLRGreedyTerminatesImmediatelyWhenAlreadyAtTargetSize(t *testing.T) {
	universe := []int{0, 1, 2}
	data := newValueData(universe, []float64{1, 2, 3})
	problem := NewProblem[valueData](data, sumObjective{}, 0, 3, true)

	algo := NewLRGreedy[valueData](1, 0, 2)
	initial := NewSolution(universe, []int{0, 1}, true)
	s := search.NewSearch[*Solution, valueData]("lr-greedy-noop", problem, algo,
		search.WithInitialSolution[*Solution, valueData](initial),
	)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 1, s.Steps(), "the single Step call should observe size==target and decline to continue")
	assert.Equal(t, []int{0, 1}, s.CurrentSolution().Selected())
}
