package subset

import (
	"math/rand"

	"github.com/go-james/james/pkg/search"
)

// UniverseData is the minimal contract a subset problem's data object must
// satisfy: the fixed universe of ids the problem selects from. Domain
// fields (distance matrices, item weights, ...) are accessed by the
// objective and constraints through whatever typed accessors the concrete
// data type adds on top of this.
type UniverseData interface {
	IDs() []int
}

// Problem extends search.BaseProblem with a mandatory subset-size window
// [MinSize, MaxSize]: CreateRandomSolution draws a uniformly random size in
// that window before sampling ids, and Validate/ValidateDelta additionally
// enforce it. Problem is built by composition (embedding
// *search.BaseProblem), not inheritance, per SPEC_FULL.md's "compose
// rather than extend" guidance — its own Validate/ValidateDelta/
// RejectSolution/RejectMove methods shadow the embedded ones precisely
// because Go's embedding does not give virtual dispatch: BaseProblem's own
// RejectMove would otherwise keep calling BaseProblem's ValidateDelta
// instead of this package's size-aware override.
type Problem[D UniverseData] struct {
	*search.BaseProblem[*Solution, D]
	MinSize, MaxSize int
	sorted           bool
}

// NewProblem builds a subset Problem over data, with solutions of size in
// [minSize, maxSize], scored by objective.
func NewProblem[D UniverseData](data D, objective search.Objective[*Solution, D], minSize, maxSize int, sorted bool) *Problem[D] {
	p := &Problem[D]{MinSize: minSize, MaxSize: maxSize, sorted: sorted}
	p.BaseProblem = search.NewBaseProblem[*Solution, D](data, objective, p.createRandomSolution)
	return p
}

func (p *Problem[D]) createRandomSolution(rng *rand.Rand) *Solution {
	universe := p.Data().IDs()
	size := p.MinSize
	if p.MaxSize > p.MinSize {
		size += rng.Intn(p.MaxSize - p.MinSize + 1)
	}
	if size > len(universe) {
		size = len(universe)
	}
	selected := randomSubset(universe, size, rng)
	return NewSolution(universe, selected, p.sorted)
}

// Validate composes the base problem's mandatory constraints with the
// size-window check.
func (p *Problem[D]) Validate(s *Solution) search.Validation {
	inner := p.BaseProblem.Validate(s)
	sizeOK := s.Size() >= p.MinSize && s.Size() <= p.MaxSize
	return NewValidation(sizeOK, inner)
}

// ValidateDelta composes the base problem's apply-full-undo delta
// validation with a projected size check computed without mutating sCur.
func (p *Problem[D]) ValidateDelta(m search.Move[*Solution], sCur *Solution, valCur search.Validation) (search.Validation, error) {
	inner, err := p.BaseProblem.ValidateDelta(m, sCur, valCur)
	if err != nil {
		return nil, err
	}
	sizeOK := true
	if sm, ok := m.(*Move); ok {
		newSize := sCur.Size() + len(sm.add) - len(sm.remove)
		sizeOK = newSize >= p.MinSize && newSize <= p.MaxSize
	}
	return NewValidation(sizeOK, inner), nil
}

// RejectSolution reports whether s fails this problem's (size-aware)
// Validate.
func (p *Problem[D]) RejectSolution(s *Solution) bool {
	return !p.Validate(s).Passed()
}

// RejectMove reports whether applying m to sCur would fail this problem's
// (size-aware) ValidateDelta.
func (p *Problem[D]) RejectMove(m search.Move[*Solution], sCur *Solution, valCur search.Validation) (bool, error) {
	v, err := p.ValidateDelta(m, sCur, valCur)
	if err != nil {
		return false, err
	}
	return !v.Passed(), nil
}

var _ search.Problem[*Solution, UniverseData] = (*Problem[UniverseData])(nil)
