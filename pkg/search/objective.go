package search

// Objective scores a solution of type S against problem data of type D.
// "Better than" is defined by IsMinimizing: smaller values win when
// minimizing, larger values win when maximizing.
type Objective[S any, D any] interface {
	// Evaluate performs a full, deterministic evaluation of s.
	Evaluate(s S, data D) Evaluation

	// EvaluateDelta computes the Evaluation of applying m to sCur, given
	// sCur's current Evaluation, without necessarily recomputing from
	// scratch. Implementations that cannot handle the concrete type of m
	// (or of evalCur, for evaluations carrying extra delta-only state)
	// must return ErrIncompatibleDelta.
	EvaluateDelta(m Move[S], sCur S, evalCur Evaluation, data D) (Evaluation, error)

	// IsMinimizing reports the optimization direction.
	IsMinimizing() bool
}

// DefaultEvaluateDelta is the fallback delta evaluation every Objective
// implementation is entitled to use: apply the move, evaluate fully, undo
// the move. It mutates sCur transactionally and restores it before
// returning, so it is always correct, merely not always fast — exactly the
// trade the spec calls out: implementations should override this when they
// have a cheaper way to describe the move's effect on the objective.
func DefaultEvaluateDelta[S any, D any](o Objective[S, D], m Move[S], sCur S, data D) (Evaluation, error) {
	if err := m.Apply(sCur); err != nil {
		return nil, err
	}
	result := o.Evaluate(sCur, data)
	if err := m.Undo(sCur); err != nil {
		return nil, err
	}
	return result, nil
}
