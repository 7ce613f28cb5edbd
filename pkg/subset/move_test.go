package subset

import (
	"testing"

	"github.com/go-james/james/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneralRejectsOverlappingAddRemove(t *testing.T) {
	_, err := NewGeneral([]int{1, 2}, []int{2, 3})
	assert.ErrorIs(t, err, search.ErrSolutionModification)
}

func TestMoveApplyUndoRoundTrip(t *testing.T) {
	universe := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s := NewSolution(universe, []int{0, 1, 2, 3}, true)
	before := s.Copy()

	m, err := NewGeneral([]int{4, 5}, []int{0, 1})
	require.NoError(t, err)

	require.NoError(t, m.Apply(s))
	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(1))

	require.NoError(t, m.Undo(s))
	assert.True(t, s.Equals(before))
}

func TestMoveApplyRejectsAddingAlreadySelected(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, []int{1}, true)
	m := NewAddition(1)
	err := m.Apply(s)
	assert.ErrorIs(t, err, search.ErrSolutionModification)
}

func TestMoveApplyRejectsRemovingUnselected(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, nil, true)
	m := NewDeletion(1)
	err := m.Apply(s)
	assert.ErrorIs(t, err, search.ErrSolutionModification)
}

func TestMoveApplyLeavesNoPartialMutationOnFailure(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, []int{1}, true)
	before := s.Copy()

	m, err := NewGeneral([]int{2}, []int{1, 3})
	require.NoError(t, err)

	err = m.Apply(s)
	assert.Error(t, err)
	assert.True(t, s.Equals(before))
}

func TestInverseSwapsAddAndRemove(t *testing.T) {
	universe := []int{0, 1, 2, 3}
	s := NewSolution(universe, []int{0, 1}, true)

	m := NewSwap(2, 0)
	require.NoError(t, m.Apply(s))
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(0))

	inv := m.Inverse()
	require.NoError(t, inv.Apply(s))
	assert.True(t, s.Contains(0))
	assert.False(t, s.Contains(2))
}

func TestCacheKeyStableUnderAddRemoveOrdering(t *testing.T) {
	m1, err := NewGeneral([]int{3, 1, 2}, []int{9, 7})
	require.NoError(t, err)
	m2, err := NewGeneral([]int{2, 3, 1}, []int{7, 9})
	require.NoError(t, err)
	assert.Equal(t, m1.CacheKey(), m2.CacheKey())
}

func TestCacheKeyDiffersForDifferentMoves(t *testing.T) {
	m1 := NewAddition(1)
	m2 := NewAddition(2)
	assert.NotEqual(t, m1.CacheKey(), m2.CacheKey())
}
