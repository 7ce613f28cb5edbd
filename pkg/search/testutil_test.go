package search

import (
	"math/rand"
	"strconv"
)

// counterSolution is a minimal Solution used by the engine's own unit
// tests: a single mutable integer, with moves that increment or decrement
// it by a fixed amount within [0, Max].
type counterSolution struct {
	v int
}

func (c *counterSolution) Copy() *counterSolution         { return &counterSolution{v: c.v} }
func (c *counterSolution) Equals(o *counterSolution) bool { return o != nil && c.v == o.v }

type counterData struct {
	Max int
}

type incrementMove struct {
	delta int
}

func (m incrementMove) Apply(s *counterSolution) error { s.v += m.delta; return nil }
func (m incrementMove) Undo(s *counterSolution) error  { s.v -= m.delta; return nil }

// CacheKey identifies an incrementMove by its delta, so MoveCache and
// TabuMemory can recognize two increments of the same size as the same
// move regardless of which counterSolution they were applied to.
func (m incrementMove) CacheKey() string {
	return "increment:" + strconv.Itoa(m.delta)
}

func (m incrementMove) Inverse() Move[*counterSolution] { return incrementMove{delta: -m.delta} }

var (
	_ CacheableMove                = incrementMove{}
	_ Invertible[*counterSolution] = incrementMove{}
)

type counterObjective struct{}

func (counterObjective) Evaluate(s *counterSolution, d counterData) Evaluation {
	return NewSimpleEvaluation(float64(s.v))
}

func (counterObjective) EvaluateDelta(m Move[*counterSolution], sCur *counterSolution, evalCur Evaluation, d counterData) (Evaluation, error) {
	im, ok := m.(incrementMove)
	if !ok {
		return nil, ErrIncompatibleDelta
	}
	return NewSimpleEvaluation(evalCur.Value() + float64(im.delta)), nil
}

func (counterObjective) IsMinimizing() bool { return false }

// counterRangeConstraint keeps the counter within [0, Max].
type counterRangeConstraint struct{}

func (counterRangeConstraint) Validate(s *counterSolution, d counterData) Validation {
	return NewSimpleValidation(s.v >= 0 && s.v <= d.Max)
}

func (counterRangeConstraint) ValidateDelta(m Move[*counterSolution], sCur *counterSolution, valCur Validation, d counterData) (Validation, error) {
	return DefaultValidateDelta[*counterSolution, counterData](counterRangeConstraint{}, m, sCur, d)
}

func newCounterProblem(max int) *BaseProblem[*counterSolution, counterData] {
	p := NewBaseProblem[*counterSolution, counterData](counterData{Max: max}, counterObjective{}, func(rng *rand.Rand) *counterSolution {
		return &counterSolution{v: rng.Intn(max + 1)}
	})
	p.AddMandatoryConstraint(counterRangeConstraint{})
	return p
}

// incrementNeighbourhood offers a single step up or down.
type incrementNeighbourhood struct{}

func (incrementNeighbourhood) RandomMove(s *counterSolution, rng *rand.Rand) (Move[*counterSolution], bool) {
	if rng.Intn(2) == 0 {
		return incrementMove{delta: 1}, true
	}
	return incrementMove{delta: -1}, true
}

func (incrementNeighbourhood) AllMoves(s *counterSolution) []Move[*counterSolution] {
	return []Move[*counterSolution]{incrementMove{delta: 1}, incrementMove{delta: -1}}
}
