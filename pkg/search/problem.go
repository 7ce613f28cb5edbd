package search

import (
	"fmt"
	"math/rand"
)

// Problem binds together problem data, an objective, and constraints, and
// exposes the composite operations a Search actually calls: random
// solution generation, evaluation (with penalizing-constraint
// composition), and validation (mandatory constraints only).
//
// Problem is an interface, not a struct, so that subset.Problem can extend
// BaseProblem's behaviour by composition (embed, supply its own
// random-solution factory, and override Validate/ValidateDelta/
// RejectSolution/RejectMove) rather than by inheritance, per SPEC_FULL.md's "compose rather than extend" guidance.
type Problem[S any, D any] interface {
	CreateRandomSolution(rng *rand.Rand) S

	Evaluate(s S) Evaluation
	EvaluateDelta(m Move[S], sCur S, evalCur Evaluation) (Evaluation, error)

	Validate(s S) Validation
	ValidateDelta(m Move[S], sCur S, valCur Validation) (Validation, error)
	RejectSolution(s S) bool
	RejectMove(m Move[S], sCur S, valCur Validation) (bool, error)

	// IsBetterThan reports whether a is a strict improvement over b,
	// respecting the objective's optimization direction.
	IsBetterThan(a, b Evaluation) bool

	Data() D
}

type penalizingEntry[S any, D any] struct {
	id         ConstraintID
	constraint PenalizingConstraint[S, D]
}

// BaseProblem is the concrete, reusable implementation of Problem. It is
// meant to be embedded by domain-specific problems (subset.Problem[D]
// embeds *BaseProblem[*subset.Solution, D]) that need to add their own
// invariants on top of the generic composition logic here.
type BaseProblem[S any, D any] struct {
	data       D
	objective  Objective[S, D]
	mandatory  []Constraint[S, D]
	penalizing []penalizingEntry[S, D]
	factory    func(rng *rand.Rand) S
}

// NewBaseProblem builds a BaseProblem from its data, objective, and random
// solution factory. Constraints are added afterwards via
// AddMandatoryConstraint / AddPenalizingConstraint.
func NewBaseProblem[S any, D any](data D, objective Objective[S, D], factory func(rng *rand.Rand) S) *BaseProblem[S, D] {
	return &BaseProblem[S, D]{data: data, objective: objective, factory: factory}
}

func (p *BaseProblem[S, D]) Data() D { return p.data }

func (p *BaseProblem[S, D]) Objective() Objective[S, D] { return p.objective }

// AddMandatoryConstraint registers c as a constraint that rejects any
// solution failing it.
func (p *BaseProblem[S, D]) AddMandatoryConstraint(c Constraint[S, D]) {
	p.mandatory = append(p.mandatory, c)
}

// AddPenalizingConstraint registers c and returns the ConstraintID future
// delta evaluations must use to look up c's prior PenalizingValidation.
func (p *BaseProblem[S, D]) AddPenalizingConstraint(c PenalizingConstraint[S, D]) ConstraintID {
	id := NewConstraintID()
	p.penalizing = append(p.penalizing, penalizingEntry[S, D]{id: id, constraint: c})
	return id
}

func (p *BaseProblem[S, D]) CreateRandomSolution(rng *rand.Rand) S {
	return p.factory(rng)
}

func (p *BaseProblem[S, D]) Evaluate(s S) Evaluation {
	base := p.objective.Evaluate(s, p.data)
	if len(p.penalizing) == 0 {
		return base
	}
	penalties := make(map[ConstraintID]PenalizingValidation, len(p.penalizing))
	for _, e := range p.penalizing {
		penalties[e.id] = e.constraint.ValidatePenalizing(s, p.data)
	}
	return NewPenalizedEvaluation(base, penalties, p.objective.IsMinimizing())
}

func (p *BaseProblem[S, D]) EvaluateDelta(m Move[S], sCur S, evalCur Evaluation) (Evaluation, error) {
	if len(p.penalizing) == 0 {
		return p.objective.EvaluateDelta(m, sCur, evalCur, p.data)
	}
	pe, ok := evalCur.(*PenalizedEvaluation)
	if !ok {
		return nil, fmt.Errorf("%w: expected *PenalizedEvaluation, got %T", ErrIncompatibleDelta, evalCur)
	}
	baseDelta, err := p.objective.EvaluateDelta(m, sCur, pe.Base, p.data)
	if err != nil {
		return nil, err
	}
	newPenalties := make(map[ConstraintID]PenalizingValidation, len(p.penalizing))
	for _, e := range p.penalizing {
		prior, ok := pe.ValidationFor(e.id)
		if !ok {
			return nil, fmt.Errorf("%w: no prior validation recorded for constraint %s", ErrIncompatibleDelta, e.id)
		}
		nv, err := e.constraint.ValidateDeltaPenalizing(m, sCur, prior, p.data)
		if err != nil {
			return nil, err
		}
		newPenalties[e.id] = nv
	}
	return NewPenalizedEvaluation(baseDelta, newPenalties, p.objective.IsMinimizing()), nil
}

func (p *BaseProblem[S, D]) Validate(s S) Validation {
	for _, c := range p.mandatory {
		v := c.Validate(s, p.data)
		if !v.Passed() {
			return v
		}
	}
	return NewSimpleValidation(true)
}

// ValidateDelta's composed default is apply-full-undo: it is always
// correct, and individual Constraint implementations remain free to
// override their own ValidateDelta for constraints an algorithm validates
// directly rather than through the Problem.
func (p *BaseProblem[S, D]) ValidateDelta(m Move[S], sCur S, valCur Validation) (Validation, error) {
	if err := m.Apply(sCur); err != nil {
		return nil, err
	}
	result := p.Validate(sCur)
	if err := m.Undo(sCur); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *BaseProblem[S, D]) RejectSolution(s S) bool {
	return !p.Validate(s).Passed()
}

func (p *BaseProblem[S, D]) RejectMove(m Move[S], sCur S, valCur Validation) (bool, error) {
	v, err := p.ValidateDelta(m, sCur, valCur)
	if err != nil {
		return false, err
	}
	return !v.Passed(), nil
}

func (p *BaseProblem[S, D]) IsBetterThan(a, b Evaluation) bool {
	if p.objective.IsMinimizing() {
		return a.Value() < b.Value()
	}
	return a.Value() > b.Value()
}
