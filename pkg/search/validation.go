package search

// Validation is a carrier reporting whether a solution satisfies a
// constraint (or a composition of constraints).
type Validation interface {
	Passed() bool
}

// SimpleValidation is a plain pass/fail Validation.
type SimpleValidation struct {
	ok bool
}

// NewSimpleValidation wraps ok as a Validation.
func NewSimpleValidation(ok bool) SimpleValidation { return SimpleValidation{ok: ok} }

func (v SimpleValidation) Passed() bool { return v.ok }

// PenalizingValidation is a Validation that additionally carries a
// non-negative penalty, which is exactly zero when the validation passed
// and strictly positive otherwise.
type PenalizingValidation interface {
	Validation
	Penalty() float64
}

type penalizingValidation struct {
	ok      bool
	penalty float64
}

// NewPenalizingValidation builds a PenalizingValidation. When ok is true
// the stored penalty is forced to zero regardless of the penalty argument,
// preserving the "0 iff passed" invariant.
func NewPenalizingValidation(ok bool, penalty float64) PenalizingValidation {
	if ok {
		penalty = 0
	}
	return penalizingValidation{ok: ok, penalty: penalty}
}

func (v penalizingValidation) Passed() bool     { return v.ok }
func (v penalizingValidation) Penalty() float64 { return v.penalty }
