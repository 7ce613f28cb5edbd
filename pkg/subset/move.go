package subset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-james/james/pkg/search"
)

// Move adds a disjoint set of ids to, and removes a disjoint set of ids
// from, a Solution's selection. Either set may be empty (but not both,
// except for the degenerate zero-value Move no constructor here
// produces). Apply fails with ErrSolutionModification if any id in add is
// already selected or any id in remove is not currently selected.
type Move struct {
	add    map[int]struct{}
	remove map[int]struct{}
}

// NewAddition returns a Move that selects id.
func NewAddition(id int) *Move {
	return &Move{add: map[int]struct{}{id: {}}, remove: map[int]struct{}{}}
}

// NewDeletion returns a Move that deselects id.
func NewDeletion(id int) *Move {
	return &Move{add: map[int]struct{}{}, remove: map[int]struct{}{id: {}}}
}

// NewSwap returns a Move that selects addID and deselects removeID.
func NewSwap(addID, removeID int) *Move {
	return &Move{add: map[int]struct{}{addID: {}}, remove: map[int]struct{}{removeID: {}}}
}

// NewGeneral returns a Move selecting every id in add and deselecting
// every id in remove. It fails if add and remove overlap — such a move is
// not representable (selecting and deselecting the same id in one step is
// ambiguous).
func NewGeneral(add, remove []int) (*Move, error) {
	addSet := make(map[int]struct{}, len(add))
	for _, id := range add {
		addSet[id] = struct{}{}
	}
	removeSet := make(map[int]struct{}, len(remove))
	for _, id := range remove {
		if _, ok := addSet[id]; ok {
			return nil, fmt.Errorf("%w: id %d is in both add and remove", search.ErrSolutionModification, id)
		}
		removeSet[id] = struct{}{}
	}
	return &Move{add: addSet, remove: removeSet}, nil
}

// Added returns the ids this move selects, in unspecified order.
func (m *Move) Added() []int { return keysOf(m.add) }

// Removed returns the ids this move deselects, in unspecified order.
func (m *Move) Removed() []int { return keysOf(m.remove) }

func keysOf(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// Apply selects every id in m.add and deselects every id in m.remove. It
// validates every precondition before mutating anything, so a failed
// Apply never leaves s partially mutated.
func (m *Move) Apply(s *Solution) error {
	for id := range m.remove {
		if !s.Contains(id) {
			return fmt.Errorf("%w: move removes id %d which is not selected", search.ErrSolutionModification, id)
		}
	}
	for id := range m.add {
		if s.Contains(id) {
			return fmt.Errorf("%w: move adds id %d which is already selected", search.ErrSolutionModification, id)
		}
	}
	for id := range m.remove {
		if _, err := s.Deselect(id); err != nil {
			return err
		}
	}
	for id := range m.add {
		if _, err := s.Select(id); err != nil {
			return err
		}
	}
	return nil
}

// Undo reverses Apply: it deselects every id in m.add and reselects every
// id in m.remove. It is only valid to call immediately after a matching
// Apply with no intervening mutation of s.
func (m *Move) Undo(s *Solution) error {
	for id := range m.add {
		if _, err := s.Deselect(id); err != nil {
			return err
		}
	}
	for id := range m.remove {
		if _, err := s.Select(id); err != nil {
			return err
		}
	}
	return nil
}

// Inverse returns the move that undoes this one's effect when applied
// fresh to the post-move solution: its add set becomes this move's remove
// set and vice versa. TabuSearch's default memory uses this to forbid
// immediately reversing a just-applied move, rather than forbidding the
// move itself (which usually could not be reapplied anyway).
func (m *Move) Inverse() search.Move[*Solution] {
	return &Move{add: m.remove, remove: m.add}
}

// CacheKey canonicalizes the move's effect for MoveCache purposes: two
// moves with the same add/remove sets produce the same key regardless of
// the order ids were supplied in.
func (m *Move) CacheKey() string {
	a := m.Added()
	r := m.Removed()
	sort.Ints(a)
	sort.Ints(r)
	var b strings.Builder
	b.WriteString("add:")
	for _, id := range a {
		fmt.Fprintf(&b, "%d,", id)
	}
	b.WriteString("|remove:")
	for _, id := range r {
		fmt.Fprintf(&b, "%d,", id)
	}
	return b.String()
}

var (
	_ search.Move[*Solution]       = (*Move)(nil)
	_ search.CacheableMove         = (*Move)(nil)
	_ search.Invertible[*Solution] = (*Move)(nil)
)
