package subset

import (
	"math/rand"

	"github.com/go-james/james/pkg/search"
	"gonum.org/v1/gonum/stat/combin"
)

// base is embedded by every concrete subset neighbourhood. It restricts
// candidate ids to those outside a fixed set F, per SPEC_FULL.md §4.5:
// add-candidates are unselected\F, remove-candidates are selected\F.
type base struct {
	fixed map[int]struct{}
}

// newBase builds a base excluding every id in fixed from both candidate
// pools. A nil or empty fixed excludes nothing.
func newBase(fixed []int) base {
	m := make(map[int]struct{}, len(fixed))
	for _, id := range fixed {
		m[id] = struct{}{}
	}
	return base{fixed: m}
}

func (b base) addCandidates(s *Solution) []int {
	out := make([]int, 0, len(s.unselected))
	for id := range s.unselected {
		if _, excluded := b.fixed[id]; !excluded {
			out = append(out, id)
		}
	}
	return out
}

func (b base) removeCandidates(s *Solution) []int {
	out := make([]int, 0, len(s.selected))
	for id := range s.selected {
		if _, excluded := b.fixed[id]; !excluded {
			out = append(out, id)
		}
	}
	return out
}

// combinationsOf returns every k-subset of candidates, for the single size
// k given, (as actual ids, not indices), via gonum's lexicographic
// combin.Combinations — eager materialization is cheap at the sizes these
// neighbourhoods target (SPEC_FULL.md §4.11); the revolving-door ordering
// is reserved for the standalone SubsetIterator utility, where minimum-
// change order is the specified, tested behaviour rather than an
// implementation detail.
func combinationsOf(candidates []int, k int) [][]int {
	if k <= 0 || k > len(candidates) {
		return nil
	}
	idxCombos := combin.Combinations(len(candidates), k)
	out := make([][]int, len(idxCombos))
	for i, idx := range idxCombos {
		ids := make([]int, len(idx))
		for j, v := range idx {
			ids[j] = candidates[v]
		}
		out[i] = ids
	}
	return out
}

// --- SingleAddition ------------------------------------------------------

// SingleAddition adds one id to the selection. Disabled once the
// selection reaches MaxSize, or when no add-candidate exists.
type SingleAddition struct {
	base
	MaxSize int
}

// NewSingleAddition returns a SingleAddition neighbourhood with maxSize
// and the given fixed ids excluded from candidacy.
func NewSingleAddition(maxSize int, fixed []int) *SingleAddition {
	return &SingleAddition{base: newBase(fixed), MaxSize: maxSize}
}

func (n *SingleAddition) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	if s.Size() >= n.MaxSize {
		return nil, false
	}
	id, ok := randomElement(n.addCandidates(s), rng)
	if !ok {
		return nil, false
	}
	return NewAddition(id), true
}

func (n *SingleAddition) AllMoves(s *Solution) []search.Move[*Solution] {
	if s.Size() >= n.MaxSize {
		return nil
	}
	cands := n.addCandidates(s)
	out := make([]search.Move[*Solution], len(cands))
	for i, id := range cands {
		out[i] = NewAddition(id)
	}
	return out
}

// --- SingleDeletion -------------------------------------------------------

// SingleDeletion removes one id from the selection. Disabled once the
// selection reaches MinSize, or when no remove-candidate exists.
type SingleDeletion struct {
	base
	MinSize int
}

// NewSingleDeletion returns a SingleDeletion neighbourhood with minSize
// and the given fixed ids excluded from candidacy.
func NewSingleDeletion(minSize int, fixed []int) *SingleDeletion {
	return &SingleDeletion{base: newBase(fixed), MinSize: minSize}
}

func (n *SingleDeletion) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	if s.Size() <= n.MinSize {
		return nil, false
	}
	id, ok := randomElement(n.removeCandidates(s), rng)
	if !ok {
		return nil, false
	}
	return NewDeletion(id), true
}

func (n *SingleDeletion) AllMoves(s *Solution) []search.Move[*Solution] {
	if s.Size() <= n.MinSize {
		return nil
	}
	cands := n.removeCandidates(s)
	out := make([]search.Move[*Solution], len(cands))
	for i, id := range cands {
		out[i] = NewDeletion(id)
	}
	return out
}

// --- SingleSwap -----------------------------------------------------------

// SingleSwap exchanges one selected id for one unselected id, leaving the
// selection size unchanged. Disabled when either candidate set is empty.
type SingleSwap struct {
	base
}

// NewSingleSwap returns a SingleSwap neighbourhood with the given fixed
// ids excluded from candidacy.
func NewSingleSwap(fixed []int) *SingleSwap {
	return &SingleSwap{base: newBase(fixed)}
}

func (n *SingleSwap) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	addID, ok := randomElement(n.addCandidates(s), rng)
	if !ok {
		return nil, false
	}
	removeID, ok := randomElement(n.removeCandidates(s), rng)
	if !ok {
		return nil, false
	}
	return NewSwap(addID, removeID), true
}

func (n *SingleSwap) AllMoves(s *Solution) []search.Move[*Solution] {
	adds := n.addCandidates(s)
	removes := n.removeCandidates(s)
	if len(adds) == 0 || len(removes) == 0 {
		return nil
	}
	out := make([]search.Move[*Solution], 0, len(adds)*len(removes))
	for _, a := range adds {
		for _, r := range removes {
			out = append(out, NewSwap(a, r))
		}
	}
	return out
}

// --- SinglePerturbation -----------------------------------------------------

// SinglePerturbation picks, per call, uniformly among whichever of
// addition/deletion/swap are currently enabled by the size window
// [MinSize,MaxSize]. Disabled only when all three are.
type SinglePerturbation struct {
	add  *SingleAddition
	del  *SingleDeletion
	swap *SingleSwap
}

// NewSinglePerturbation returns a SinglePerturbation neighbourhood
// composing single addition/deletion/swap over [minSize,maxSize].
func NewSinglePerturbation(minSize, maxSize int, fixed []int) *SinglePerturbation {
	return &SinglePerturbation{
		add:  NewSingleAddition(maxSize, fixed),
		del:  NewSingleDeletion(minSize, fixed),
		swap: NewSingleSwap(fixed),
	}
}

func (n *SinglePerturbation) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	type option struct {
		sample func() (search.Move[*Solution], bool)
	}
	var options []option
	if s.Size() < n.add.MaxSize && len(n.add.addCandidates(s)) > 0 {
		options = append(options, option{func() (search.Move[*Solution], bool) { return n.add.RandomMove(s, rng) }})
	}
	if s.Size() > n.del.MinSize && len(n.del.removeCandidates(s)) > 0 {
		options = append(options, option{func() (search.Move[*Solution], bool) { return n.del.RandomMove(s, rng) }})
	}
	if len(n.swap.addCandidates(s)) > 0 && len(n.swap.removeCandidates(s)) > 0 {
		options = append(options, option{func() (search.Move[*Solution], bool) { return n.swap.RandomMove(s, rng) }})
	}
	if len(options) == 0 {
		return nil, false
	}
	return options[rng.Intn(len(options))].sample()
}

func (n *SinglePerturbation) AllMoves(s *Solution) []search.Move[*Solution] {
	var out []search.Move[*Solution]
	out = append(out, n.add.AllMoves(s)...)
	out = append(out, n.del.AllMoves(s)...)
	out = append(out, n.swap.AllMoves(s)...)
	return out
}

// --- MultiAddition ----------------------------------------------------------

// MultiAddition adds k ids, 1<=k<=K, chosen so the resulting size never
// exceeds MaxSize. Disabled once the selection reaches MaxSize.
type MultiAddition struct {
	base
	K, MaxSize int
}

// NewMultiAddition returns a MultiAddition neighbourhood adding up to k
// ids per move, bounded by maxSize.
func NewMultiAddition(k, maxSize int, fixed []int) *MultiAddition {
	return &MultiAddition{base: newBase(fixed), K: k, MaxSize: maxSize}
}

func (n *MultiAddition) maxK(s *Solution, candCount int) int {
	maxK := n.K
	if room := n.MaxSize - s.Size(); room < maxK {
		maxK = room
	}
	if candCount < maxK {
		maxK = candCount
	}
	return maxK
}

func (n *MultiAddition) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	cands := n.addCandidates(s)
	maxK := n.maxK(s, len(cands))
	if maxK < 1 {
		return nil, false
	}
	k := 1 + rng.Intn(maxK)
	add := randomSubset(cands, k, rng)
	m, err := NewGeneral(add, nil)
	if err != nil {
		return nil, false
	}
	return m, true
}

func (n *MultiAddition) AllMoves(s *Solution) []search.Move[*Solution] {
	cands := n.addCandidates(s)
	maxK := n.maxK(s, len(cands))
	if maxK < 1 {
		return nil
	}
	var out []search.Move[*Solution]
	for k := 1; k <= maxK; k++ {
		for _, combo := range combinationsOf(cands, k) {
			m, err := NewGeneral(combo, nil)
			if err == nil {
				out = append(out, m)
			}
		}
	}
	return out
}

// --- MultiDeletion ----------------------------------------------------------

// MultiDeletion removes k ids, 1<=k<=K, chosen so the resulting size never
// falls below MinSize. Disabled once the selection reaches MinSize.
type MultiDeletion struct {
	base
	K, MinSize int
}

// NewMultiDeletion returns a MultiDeletion neighbourhood removing up to k
// ids per move, bounded by minSize.
func NewMultiDeletion(k, minSize int, fixed []int) *MultiDeletion {
	return &MultiDeletion{base: newBase(fixed), K: k, MinSize: minSize}
}

func (n *MultiDeletion) maxK(s *Solution, candCount int) int {
	maxK := n.K
	if room := s.Size() - n.MinSize; room < maxK {
		maxK = room
	}
	if candCount < maxK {
		maxK = candCount
	}
	return maxK
}

func (n *MultiDeletion) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	cands := n.removeCandidates(s)
	maxK := n.maxK(s, len(cands))
	if maxK < 1 {
		return nil, false
	}
	k := 1 + rng.Intn(maxK)
	remove := randomSubset(cands, k, rng)
	m, err := NewGeneral(nil, remove)
	if err != nil {
		return nil, false
	}
	return m, true
}

func (n *MultiDeletion) AllMoves(s *Solution) []search.Move[*Solution] {
	cands := n.removeCandidates(s)
	maxK := n.maxK(s, len(cands))
	if maxK < 1 {
		return nil
	}
	var out []search.Move[*Solution]
	for k := 1; k <= maxK; k++ {
		for _, combo := range combinationsOf(cands, k) {
			m, err := NewGeneral(nil, combo)
			if err == nil {
				out = append(out, m)
			}
		}
	}
	return out
}

// --- MultiSwap --------------------------------------------------------------

// MultiSwap adds k and removes k ids, 1<=k<=K, leaving the selection size
// unchanged. Disabled when either candidate pool is empty.
type MultiSwap struct {
	base
	K int
}

// NewMultiSwap returns a MultiSwap neighbourhood exchanging up to k ids
// per move.
func NewMultiSwap(k int, fixed []int) *MultiSwap {
	return &MultiSwap{base: newBase(fixed), K: k}
}

func (n *MultiSwap) maxK(adds, removes []int) int {
	maxK := n.K
	if len(adds) < maxK {
		maxK = len(adds)
	}
	if len(removes) < maxK {
		maxK = len(removes)
	}
	return maxK
}

func (n *MultiSwap) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	adds := n.addCandidates(s)
	removes := n.removeCandidates(s)
	maxK := n.maxK(adds, removes)
	if maxK < 1 {
		return nil, false
	}
	k := 1 + rng.Intn(maxK)
	add := randomSubset(adds, k, rng)
	remove := randomSubset(removes, k, rng)
	m, err := NewGeneral(add, remove)
	if err != nil {
		return nil, false
	}
	return m, true
}

func (n *MultiSwap) AllMoves(s *Solution) []search.Move[*Solution] {
	adds := n.addCandidates(s)
	removes := n.removeCandidates(s)
	maxK := n.maxK(adds, removes)
	if maxK < 1 {
		return nil
	}
	var out []search.Move[*Solution]
	for k := 1; k <= maxK; k++ {
		addCombos := combinationsOf(adds, k)
		removeCombos := combinationsOf(removes, k)
		for _, a := range addCombos {
			for _, r := range removeCombos {
				m, err := NewGeneral(a, r)
				if err == nil {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

// --- DisjointMultiAddition ---------------------------------------------

// DisjointMultiAddition adds exactly K ids, or fewer if fewer than K room
// remains to MaxSize, in a single move (as opposed to MultiAddition, which
// ranges over every k from 1 to K). Disabled when there is no
// add-candidate at all.
type DisjointMultiAddition struct {
	base
	K, MaxSize int
}

// NewDisjointMultiAddition returns a DisjointMultiAddition neighbourhood
// adding exactly k ids per move (clamped to the room left under maxSize).
func NewDisjointMultiAddition(k, maxSize int, fixed []int) *DisjointMultiAddition {
	return &DisjointMultiAddition{base: newBase(fixed), K: k, MaxSize: maxSize}
}

func (n *DisjointMultiAddition) effectiveK(s *Solution, candCount int) int {
	k := n.K
	if room := n.MaxSize - s.Size(); room < k {
		k = room
	}
	if candCount < k {
		k = candCount
	}
	return k
}

func (n *DisjointMultiAddition) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	cands := n.addCandidates(s)
	k := n.effectiveK(s, len(cands))
	if k < 1 {
		return nil, false
	}
	m, err := NewGeneral(randomSubset(cands, k, rng), nil)
	if err != nil {
		return nil, false
	}
	return m, true
}

func (n *DisjointMultiAddition) AllMoves(s *Solution) []search.Move[*Solution] {
	cands := n.addCandidates(s)
	k := n.effectiveK(s, len(cands))
	if k < 1 {
		return nil
	}
	var out []search.Move[*Solution]
	for _, combo := range combinationsOf(cands, k) {
		m, err := NewGeneral(combo, nil)
		if err == nil {
			out = append(out, m)
		}
	}
	return out
}

// --- DisjointMultiDeletion ---------------------------------------------

// DisjointMultiDeletion removes exactly K ids, or fewer if fewer than K
// room remains down to MinSize, in a single move. Disabled when there is
// no remove-candidate at all.
type DisjointMultiDeletion struct {
	base
	K, MinSize int
}

// NewDisjointMultiDeletion returns a DisjointMultiDeletion neighbourhood
// removing exactly k ids per move (clamped to the room left above
// minSize).
func NewDisjointMultiDeletion(k, minSize int, fixed []int) *DisjointMultiDeletion {
	return &DisjointMultiDeletion{base: newBase(fixed), K: k, MinSize: minSize}
}

func (n *DisjointMultiDeletion) effectiveK(s *Solution, candCount int) int {
	k := n.K
	if room := s.Size() - n.MinSize; room < k {
		k = room
	}
	if candCount < k {
		k = candCount
	}
	return k
}

func (n *DisjointMultiDeletion) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	cands := n.removeCandidates(s)
	k := n.effectiveK(s, len(cands))
	if k < 1 {
		return nil, false
	}
	m, err := NewGeneral(nil, randomSubset(cands, k, rng))
	if err != nil {
		return nil, false
	}
	return m, true
}

func (n *DisjointMultiDeletion) AllMoves(s *Solution) []search.Move[*Solution] {
	cands := n.removeCandidates(s)
	k := n.effectiveK(s, len(cands))
	if k < 1 {
		return nil
	}
	var out []search.Move[*Solution]
	for _, combo := range combinationsOf(cands, k) {
		m, err := NewGeneral(nil, combo)
		if err == nil {
			out = append(out, m)
		}
	}
	return out
}

// --- DisjointMultiSwap ----------------------------------------------------

// DisjointMultiSwap adds exactly K ids and removes exactly K ids in a
// single move. Disabled when either candidate pool has fewer than K ids.
type DisjointMultiSwap struct {
	base
	K int
}

// NewDisjointMultiSwap returns a DisjointMultiSwap neighbourhood
// exchanging exactly k ids per move.
func NewDisjointMultiSwap(k int, fixed []int) *DisjointMultiSwap {
	return &DisjointMultiSwap{base: newBase(fixed), K: k}
}

func (n *DisjointMultiSwap) RandomMove(s *Solution, rng *rand.Rand) (search.Move[*Solution], bool) {
	adds := n.addCandidates(s)
	removes := n.removeCandidates(s)
	if len(adds) < n.K || len(removes) < n.K || n.K < 1 {
		return nil, false
	}
	m, err := NewGeneral(randomSubset(adds, n.K, rng), randomSubset(removes, n.K, rng))
	if err != nil {
		return nil, false
	}
	return m, true
}

func (n *DisjointMultiSwap) AllMoves(s *Solution) []search.Move[*Solution] {
	adds := n.addCandidates(s)
	removes := n.removeCandidates(s)
	if len(adds) < n.K || len(removes) < n.K || n.K < 1 {
		return nil
	}
	var out []search.Move[*Solution]
	for _, a := range combinationsOf(adds, n.K) {
		for _, r := range combinationsOf(removes, n.K) {
			m, err := NewGeneral(a, r)
			if err == nil {
				out = append(out, m)
			}
		}
	}
	return out
}

var (
	_ search.Neighbourhood[*Solution] = (*SingleAddition)(nil)
	_ search.Neighbourhood[*Solution] = (*SingleDeletion)(nil)
	_ search.Neighbourhood[*Solution] = (*SingleSwap)(nil)
	_ search.Neighbourhood[*Solution] = (*SinglePerturbation)(nil)
	_ search.Neighbourhood[*Solution] = (*MultiAddition)(nil)
	_ search.Neighbourhood[*Solution] = (*MultiDeletion)(nil)
	_ search.Neighbourhood[*Solution] = (*MultiSwap)(nil)
	_ search.Neighbourhood[*Solution] = (*DisjointMultiAddition)(nil)
	_ search.Neighbourhood[*Solution] = (*DisjointMultiDeletion)(nil)
	_ search.Neighbourhood[*Solution] = (*DisjointMultiSwap)(nil)
)
