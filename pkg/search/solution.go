package search

import (
	"fmt"
	"reflect"
)

// Solution is implemented by every concrete solution type S. It is
// F-bounded: a type implements Solution[S] in terms of itself, which lets
// the rest of the engine be generic over S while the compiler guarantees
// that Copy returns exactly the implementer's own type — the static
// equivalent of the "deep copy must return my own runtime type" contract
// from the original object-oriented design. Concrete solution types are
// expected to be pointer-shaped (e.g. *subset.Solution) so that Move.Apply
// can mutate them in place.
type Solution[S any] interface {
	// Copy returns a deep copy. Mutating the copy must never affect the
	// receiver, and vice versa.
	Copy() S

	// Equals reports whether other has the same semantic state as the
	// receiver (same selections, same values — whatever "same" means for
	// the concrete type). Implementations with value equality should keep
	// any cached hash consistent with it.
	Equals(other S) bool
}

// VerifyDeepCopy checks that s.Copy() behaves like a deep copy: the copy
// must compare equal to its source, and when S is pointer-shaped the copy
// must not be the same pointer as the source. It exists because "my Copy
// silently returns the receiver itself" is an easy mistake for a new
// Solution implementer to make and the engine has no other way to catch
// it — the generic type bound alone only guarantees the *type* is right,
// not that the copy is actually independent memory.
func VerifyDeepCopy[S Solution[S]](s S) error {
	dup := s.Copy()
	if !dup.Equals(s) {
		return fmt.Errorf("%w: copy is not equal to its source", ErrSolutionCopy)
	}
	rv := reflect.ValueOf(s)
	rd := reflect.ValueOf(dup)
	if rv.Kind() == reflect.Ptr && rd.Kind() == reflect.Ptr && !rv.IsNil() && rv.Pointer() == rd.Pointer() {
		return fmt.Errorf("%w: Copy() returned the same pointer as the receiver", ErrSolutionCopy)
	}
	return nil
}
