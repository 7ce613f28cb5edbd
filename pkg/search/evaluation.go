package search

// Evaluation is a semantic scalar carrier produced by an Objective. It may
// carry extra metadata (see PenalizedEvaluation) to make delta evaluation
// possible, but every Evaluation ultimately reduces to a single comparable
// value.
type Evaluation interface {
	Value() float64
}

// SimpleEvaluation is an Evaluation holding a plain scalar, with no
// penalizing-constraint composition.
type SimpleEvaluation struct {
	v float64
}

// NewSimpleEvaluation wraps v as an Evaluation.
func NewSimpleEvaluation(v float64) SimpleEvaluation { return SimpleEvaluation{v: v} }

func (e SimpleEvaluation) Value() float64 { return e.v }

// PenalizedEvaluation composes a base objective Evaluation with the
// penalties raised by a problem's penalizing constraints. Its Value is
// base.Value() plus the sum of penalties when minimizing, or minus that
// sum when maximizing, so that a penalty always pushes the value in the
// "worse" direction regardless of optimization sense.
//
// Penalties are keyed by ConstraintID rather than by position in a slice:
// this is the fix for the original design's bug of casting the current
// validation by ordering in the penalties map (see SPEC_FULL.md §4.7b) —
// delta evaluation must look up "this constraint's previous validation" by
// identity, because the set of registered penalizing constraints is fixed
// per Problem but nothing guarantees iteration order stays stable across
// Evaluation values built independently.
type PenalizedEvaluation struct {
	Base       Evaluation
	Penalties  map[ConstraintID]PenalizingValidation
	Minimizing bool

	cached    bool
	cachedVal float64
}

// NewPenalizedEvaluation builds a PenalizedEvaluation. The penalties map is
// retained by reference (not copied) — callers should treat it as owned by
// the returned evaluation from this point on.
func NewPenalizedEvaluation(base Evaluation, penalties map[ConstraintID]PenalizingValidation, minimizing bool) *PenalizedEvaluation {
	return &PenalizedEvaluation{Base: base, Penalties: penalties, Minimizing: minimizing}
}

// Value returns base.Value() adjusted by the total penalty. The result is
// cached until Invalidate is called; PenalizedEvaluation values produced by
// the engine are effectively immutable once built, so callers normally
// never need to call Invalidate themselves.
func (p *PenalizedEvaluation) Value() float64 {
	if p.cached {
		return p.cachedVal
	}
	total := 0.0
	for _, v := range p.Penalties {
		total += v.Penalty()
	}
	v := p.Base.Value()
	if p.Minimizing {
		v += total
	} else {
		v -= total
	}
	p.cachedVal = v
	p.cached = true
	return v
}

// Invalidate clears the cached composed value, forcing the next Value call
// to recompute it from Base and Penalties.
func (p *PenalizedEvaluation) Invalidate() { p.cached = false }

// ValidationFor returns the PenalizingValidation previously recorded for
// the constraint identified by id, for use by delta evaluation.
func (p *PenalizedEvaluation) ValidationFor(id ConstraintID) (PenalizingValidation, bool) {
	v, ok := p.Penalties[id]
	return v, ok
}
