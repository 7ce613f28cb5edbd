package search

import "github.com/google/uuid"

// ConstraintID is a stable identity assigned to a constraint when it is
// registered with a Problem. Penalized evaluations key their per-constraint
// validations by ConstraintID rather than by slice position, so that delta
// evaluation can look up "the validation this constraint produced last
// time" even if the problem's constraint list is reordered or extended
// between calls.
type ConstraintID uuid.UUID

// NewConstraintID returns a fresh, process-unique constraint identity.
func NewConstraintID() ConstraintID { return ConstraintID(uuid.New()) }

func (id ConstraintID) String() string { return uuid.UUID(id).String() }

// ListenerID identifies a listener registered with a Search, so that
// RemoveListener can target a specific registration even when two distinct
// listener values would otherwise compare equal.
type ListenerID uuid.UUID

// NewListenerID returns a fresh, process-unique listener identity.
func NewListenerID() ListenerID { return ListenerID(uuid.New()) }

func (id ListenerID) String() string { return uuid.UUID(id).String() }
