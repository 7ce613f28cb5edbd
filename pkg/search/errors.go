package search

import "errors"

// Sentinel errors for the search engine's error taxonomy. Each is raised
// at a specific boundary described in its doc comment; callers should use
// errors.Is / errors.As since concrete errors are usually wrapped with
// fmt.Errorf("...: %w", ...) to add call-site context.
var (
	// ErrSolutionModification is returned when Move.Apply/Undo or
	// Solution mutation methods (Select/Deselect and friends) would
	// violate a documented precondition (e.g. adding an id already
	// selected, or an id outside the solution's universe).
	ErrSolutionModification = errors.New("search: solution modification violated a precondition")

	// ErrSolutionCopy is returned by VerifyDeepCopy when a Solution's
	// Copy method does not behave like a deep copy (returns the same
	// underlying value, or a value unequal to its source).
	ErrSolutionCopy = errors.New("search: solution deep copy is not a faithful copy")

	// ErrIncompatibleDelta is returned by EvaluateDelta/ValidateDelta
	// implementations that receive a move or evaluation/validation
	// variant they do not recognize.
	ErrIncompatibleDelta = errors.New("search: incompatible move or evaluation variant for delta computation")

	// ErrIncompatibleStopCriterion is returned when a stop criterion is
	// attached to a search it cannot meaningfully observe.
	ErrIncompatibleStopCriterion = errors.New("search: stop criterion is incompatible with this search")

	// ErrIncompatibleListener is returned when a listener that requires
	// local-search semantics (new_current callbacks) is attached to a
	// search that has no notion of a "current" solution distinct from
	// its best-ever solution.
	ErrIncompatibleListener = errors.New("search: listener is incompatible with this search")

	// ErrSearch covers invalid search-lifecycle operations: changing
	// configuration while not IDLE, starting a parallel search with no
	// children, or an unexpected failure while coordinating children.
	ErrSearch = errors.New("search: invalid operation for current search state")

	// ErrNoSuchElement is returned by a SolutionIterator's Next once it
	// has been exhausted; callers must guard with HasNext.
	ErrNoSuchElement = errors.New("search: iterator exhausted")
)
