package subset

import (
	"testing"

	"github.com/go-james/james/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolutionPartitionsUniverse(t *testing.T) {
	s := NewSolution([]int{1, 2, 3, 4, 5}, []int{2, 4}, true)
	assert.ElementsMatch(t, []int{2, 4}, s.Selected())
	assert.ElementsMatch(t, []int{1, 3, 5}, s.Unselected())
	assert.Equal(t, 2, s.Size())
}

func TestNewSolutionIgnoresSelectedOutsideUniverse(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, []int{2, 99}, true)
	assert.False(t, s.Contains(99))
	assert.False(t, s.InUniverse(99))
	assert.Equal(t, []int{2}, s.Selected())
}

func TestSelectedUnselectedPartitionUniverseAfterMutation(t *testing.T) {
	universe := []int{0, 1, 2, 3, 4, 5, 6, 7}
	s := NewSolution(universe, []int{0, 2, 4}, true)

	_, err := s.Select(1)
	require.NoError(t, err)
	_, err = s.Deselect(2)
	require.NoError(t, err)

	combined := append(append([]int(nil), s.Selected()...), s.Unselected()...)
	assert.ElementsMatch(t, universe, combined)
	for _, id := range s.Selected() {
		assert.False(t, containsInt(s.Unselected(), id))
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func TestSelectRejectsIDOutsideUniverse(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, nil, true)
	_, err := s.Select(42)
	assert.ErrorIs(t, err, search.ErrSolutionModification)
}

func TestSelectIsIdempotent(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, []int{1}, true)
	changed, err := s.Select(1)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCopyIsIndependent(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, []int{1}, true)
	cp := s.Copy()

	_, err := cp.Select(2)
	require.NoError(t, err)

	assert.True(t, cp.Contains(2))
	assert.False(t, s.Contains(2))
	assert.True(t, s.Equals(s.Copy()))
	assert.False(t, s.Equals(cp))
}

func TestSelectAllDeselectAll(t *testing.T) {
	s := NewSolution([]int{1, 2, 3}, []int{1}, true)

	changed, err := s.SelectAll()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3, s.Size())

	changed, err = s.DeselectAll()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, s.Size())

	changed, err = s.DeselectAll()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSortedOrdering(t *testing.T) {
	s := NewSolution([]int{5, 3, 1, 4, 2}, []int{5, 1}, true)
	assert.Equal(t, []int{1, 5}, s.Selected())
	assert.Equal(t, []int{2, 3, 4}, s.Unselected())
}
