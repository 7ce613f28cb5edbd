package subset

import "github.com/go-james/james/pkg/search"

// Validation composes a subset-size check with an inner validation
// produced by the problem's own mandatory constraints. Passed (the
// Validation interface method, same as PassedChecked(true)) requires both;
// PassedChecked(false) ignores the size check and answers "would this be
// valid, ignoring size bounds".
type Validation struct {
	sizeOK bool
	inner  search.Validation
}

// NewValidation composes sizeOK with inner. inner may be nil, which is
// treated as vacuously passing (useful for a subset problem with no
// constraints beyond the size window).
func NewValidation(sizeOK bool, inner search.Validation) Validation {
	return Validation{sizeOK: sizeOK, inner: inner}
}

// Passed reports whether both the size window and the inner constraints
// are satisfied.
func (v Validation) Passed() bool { return v.PassedChecked(true) }

// PassedChecked reports whether the inner constraints are satisfied, and,
// when checkSize is true, whether the size window is too.
func (v Validation) PassedChecked(checkSize bool) bool {
	if checkSize && !v.sizeOK {
		return false
	}
	if v.inner == nil {
		return true
	}
	return v.inner.Passed()
}

// SizeOK reports whether the size window alone is satisfied.
func (v Validation) SizeOK() bool { return v.sizeOK }

// Inner returns the composed inner validation (nil if none).
func (v Validation) Inner() search.Validation { return v.inner }

var _ search.Validation = Validation{}
