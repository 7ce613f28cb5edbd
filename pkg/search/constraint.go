package search

// Constraint validates a solution of type S against problem data of type
// D. A Constraint is "mandatory": a Problem rejects any solution for which
// Validate reports !Passed().
type Constraint[S any, D any] interface {
	Validate(s S, data D) Validation

	// ValidateDelta computes the Validation of applying m to sCur, given
	// sCur's current Validation, without necessarily revalidating from
	// scratch. Must return ErrIncompatibleDelta for unrecognized move or
	// validation variants.
	ValidateDelta(m Move[S], sCur S, valCur Validation, data D) (Validation, error)
}

// PenalizingConstraint is a Constraint whose violations contribute a
// penalty to a Problem's evaluation instead of rejecting the solution
// outright.
type PenalizingConstraint[S any, D any] interface {
	Constraint[S, D]

	ValidatePenalizing(s S, data D) PenalizingValidation
	ValidateDeltaPenalizing(m Move[S], sCur S, valCur PenalizingValidation, data D) (PenalizingValidation, error)
}

// DefaultValidateDelta is the fallback delta validation every Constraint
// implementation is entitled to use: apply the move, validate fully, undo
// the move.
func DefaultValidateDelta[S any, D any](c Constraint[S, D], m Move[S], sCur S, data D) (Validation, error) {
	if err := m.Apply(sCur); err != nil {
		return nil, err
	}
	result := c.Validate(sCur, data)
	if err := m.Undo(sCur); err != nil {
		return nil, err
	}
	return result, nil
}

// DefaultValidateDeltaPenalizing is the penalizing-constraint counterpart
// of DefaultValidateDelta.
func DefaultValidateDeltaPenalizing[S any, D any](c PenalizingConstraint[S, D], m Move[S], sCur S, data D) (PenalizingValidation, error) {
	if err := m.Apply(sCur); err != nil {
		return nil, err
	}
	result := c.ValidatePenalizing(sCur, data)
	if err := m.Undo(sCur); err != nil {
		return nil, err
	}
	return result, nil
}
