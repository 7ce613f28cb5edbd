// Package subset implements the first-class subset-selection data model:
// a Solution holding a selected/unselected partition over a fixed ID
// universe, the Move algebra over it, the neighbourhood family from
// SPEC_FULL.md §4.5, and the LR greedy construction heuristic — all built
// on top of the generic pkg/search engine.
package subset

import (
	"fmt"
	"sort"

	"github.com/go-james/james/pkg/search"
	"github.com/samber/lo"
)

// Solution partitions a fixed universe of integer IDs into selected and
// unselected. The universe itself (all) is immutable after construction;
// only the partition changes. When sorted is true, Selected/Unselected/All
// return ascending slices (useful for deterministic move-cache keys and
// human-readable output); when false, iteration order is whatever the
// backing maps happen to produce, which is cheaper when callers never
// inspect ordering.
type Solution struct {
	all        []int
	allSet     map[int]struct{}
	selected   map[int]struct{}
	unselected map[int]struct{}
	sorted     bool
}

// NewSolution builds a Solution over universe with the ids in selected
// pre-selected (every other id in universe starts unselected). selected
// need not be sorted or deduplicated-by-caller; duplicates collapse
// naturally through the backing set.
func NewSolution(universe []int, selected []int, sorted bool) *Solution {
	all := append([]int(nil), universe...)
	if sorted {
		sort.Ints(all)
	}
	allSet := make(map[int]struct{}, len(all))
	for _, id := range all {
		allSet[id] = struct{}{}
	}
	sel := make(map[int]struct{}, len(selected))
	for _, id := range selected {
		if _, ok := allSet[id]; ok {
			sel[id] = struct{}{}
		}
	}
	unsel := make(map[int]struct{}, len(all)-len(sel))
	for id := range allSet {
		if _, ok := sel[id]; !ok {
			unsel[id] = struct{}{}
		}
	}
	return &Solution{all: all, allSet: allSet, selected: sel, unselected: unsel, sorted: sorted}
}

// All returns every id in the universe.
func (s *Solution) All() []int { return append([]int(nil), s.all...) }

// Selected returns the currently selected ids, sorted ascending if s was
// constructed with sorted=true.
func (s *Solution) Selected() []int { return s.idsOf(s.selected) }

// Unselected returns the currently unselected ids, sorted ascending if s
// was constructed with sorted=true.
func (s *Solution) Unselected() []int { return s.idsOf(s.unselected) }

func (s *Solution) idsOf(set map[int]struct{}) []int {
	out := lo.Keys(set)
	if s.sorted {
		sort.Ints(out)
	}
	return out
}

// Size returns the number of currently selected ids.
func (s *Solution) Size() int { return len(s.selected) }

// Contains reports whether id is currently selected.
func (s *Solution) Contains(id int) bool {
	_, ok := s.selected[id]
	return ok
}

// InUniverse reports whether id belongs to the fixed universe at all.
func (s *Solution) InUniverse(id int) bool {
	_, ok := s.allSet[id]
	return ok
}

// Select adds id to the selection, returning whether it changed anything.
// It fails with ErrSolutionModification if id is outside the universe.
func (s *Solution) Select(id int) (bool, error) {
	if !s.InUniverse(id) {
		return false, fmt.Errorf("%w: id %d is not in the universe", search.ErrSolutionModification, id)
	}
	if s.Contains(id) {
		return false, nil
	}
	delete(s.unselected, id)
	s.selected[id] = struct{}{}
	return true, nil
}

// Deselect removes id from the selection, returning whether it changed
// anything. It fails with ErrSolutionModification if id is outside the
// universe.
func (s *Solution) Deselect(id int) (bool, error) {
	if !s.InUniverse(id) {
		return false, fmt.Errorf("%w: id %d is not in the universe", search.ErrSolutionModification, id)
	}
	if !s.Contains(id) {
		return false, nil
	}
	delete(s.selected, id)
	s.unselected[id] = struct{}{}
	return true, nil
}

// SelectAll selects every id in the universe, returning whether it changed
// anything.
func (s *Solution) SelectAll() (bool, error) {
	changed := len(s.unselected) > 0
	for id := range s.unselected {
		s.selected[id] = struct{}{}
	}
	s.unselected = make(map[int]struct{})
	return changed, nil
}

// DeselectAll deselects every id, returning whether it changed anything.
func (s *Solution) DeselectAll() (bool, error) {
	changed := len(s.selected) > 0
	for id := range s.selected {
		s.unselected[id] = struct{}{}
	}
	s.selected = make(map[int]struct{})
	return changed, nil
}

// Copy returns a deep copy: mutating the copy's selection never affects
// the receiver, and vice versa.
func (s *Solution) Copy() *Solution {
	return &Solution{
		all:        s.all,
		allSet:     s.allSet,
		selected:   lo.Assign(map[int]struct{}{}, s.selected),
		unselected: lo.Assign(map[int]struct{}{}, s.unselected),
		sorted:     s.sorted,
	}
}

// Equals reports whether other has exactly the same selected set (which,
// given a shared universe, implies the same unselected set too).
func (s *Solution) Equals(other *Solution) bool {
	if other == nil || len(s.selected) != len(other.selected) {
		return false
	}
	for id := range s.selected {
		if _, ok := other.selected[id]; !ok {
			return false
		}
	}
	return true
}

func (s *Solution) String() string {
	return fmt.Sprintf("subset.Solution{selected=%v}", s.Selected())
}

var _ search.Solution[*Solution] = (*Solution)(nil)
