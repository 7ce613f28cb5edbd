package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idSet is the toy solution used for the parallel-search correctness
// scenario: a subset of a fixed 10-id universe, scored by its own size.
type idSet struct {
	selected map[int]struct{}
}

func (s *idSet) Copy() *idSet {
	cp := make(map[int]struct{}, len(s.selected))
	for id := range s.selected {
		cp[id] = struct{}{}
	}
	return &idSet{selected: cp}
}

func (s *idSet) Equals(o *idSet) bool {
	if len(s.selected) != len(o.selected) {
		return false
	}
	for id := range s.selected {
		if _, ok := o.selected[id]; !ok {
			return false
		}
	}
	return true
}

type addIDMove struct{ id int }

func (m addIDMove) Apply(s *idSet) error { s.selected[m.id] = struct{}{}; return nil }
func (m addIDMove) Undo(s *idSet) error  { delete(s.selected, m.id); return nil }

type idSetData struct{ universe []int }

type cardinalityObjective struct{}

func (cardinalityObjective) Evaluate(s *idSet, d idSetData) Evaluation {
	return NewSimpleEvaluation(float64(len(s.selected)))
}

func (cardinalityObjective) EvaluateDelta(m Move[*idSet], sCur *idSet, evalCur Evaluation, d idSetData) (Evaluation, error) {
	am, ok := m.(addIDMove)
	if !ok {
		return nil, ErrIncompatibleDelta
	}
	if _, already := sCur.selected[am.id]; already {
		return evalCur, nil
	}
	return NewSimpleEvaluation(evalCur.Value() + 1), nil
}

func (cardinalityObjective) IsMinimizing() bool { return false }

type addAnyUnselectedNeighbourhood struct{ universe []int }

func (n addAnyUnselectedNeighbourhood) RandomMove(s *idSet, rng *rand.Rand) (Move[*idSet], bool) {
	moves := n.AllMoves(s)
	if len(moves) == 0 {
		return nil, false
	}
	return moves[rng.Intn(len(moves))], true
}

func (n addAnyUnselectedNeighbourhood) AllMoves(s *idSet) []Move[*idSet] {
	var out []Move[*idSet]
	for _, id := range n.universe {
		if _, ok := s.selected[id]; !ok {
			out = append(out, addIDMove{id: id})
		}
	}
	return out
}

func newChildSearch(name string, universe []int, seed int64) *Search[*idSet, idSetData] {
	data := idSetData{universe: universe}
	problem := NewBaseProblem[*idSet, idSetData](data, cardinalityObjective{}, func(rng *rand.Rand) *idSet {
		return &idSet{selected: map[int]struct{}{}}
	})
	algo := NewSteepestDescent[*idSet, idSetData](addAnyUnselectedNeighbourhood{universe: universe})
	return NewSearch[*idSet, idSetData](name, problem, algo,
		WithSeed[*idSet, idSetData](seed),
		WithInitialSolution[*idSet, idSetData](&idSet{selected: map[int]struct{}{}}),
	)
}

func TestRunParallelFindsGlobalMaximumAcrossChildren(t *testing.T) {
	universe := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	children := []*Search[*idSet, idSetData]{
		newChildSearch("child-0", universe, 1),
		newChildSearch("child-1", universe, 2),
		newChildSearch("child-2", universe, 3),
	}

	_, bestEval, _, err := RunParallel[*idSet, idSetData](context.Background(), children)
	require.NoError(t, err)
	assert.Equal(t, float64(10), bestEval.Value())

	for _, child := range children {
		childEval, ok := child.BestSolutionEvaluation()
		require.True(t, ok)
		assert.LessOrEqual(t, childEval.Value(), bestEval.Value())
	}
}

func TestRunParallelWithNoChildrenReturnsErrSearch(t *testing.T) {
	sol, eval, valid, err := RunParallel[*idSet, idSetData](context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearch)
	assert.Nil(t, sol)
	assert.Nil(t, eval)
	assert.Nil(t, valid)
}
