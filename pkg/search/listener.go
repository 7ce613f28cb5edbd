package search

// Listener observes a Search's lifecycle. Callbacks are invoked
// synchronously by the search driver on the same goroutine that is running
// the search, so a callback must never block on, or attempt to mutate,
// the search except through its public control surface (Stop, Dispose,
// AddStopCriterion, ...).
//
// Listener is generic over S and D so implementations can inspect the
// solutions/evaluations passed to NewBestSolution / NewCurrentSolution
// without type assertions. Embed BaseListener to only implement the
// callbacks you need.
type Listener[S any, D any] interface {
	Started(s *Search[S, D])
	Stopped(s *Search[S, D])
	NewBestSolution(s *Search[S, D], sol S, eval Evaluation, valid Validation)
	NewCurrentSolution(s *Search[S, D], sol S)
	StepCompleted(s *Search[S, D], step int)
	StatusChanged(s *Search[S, D], from, to Status)

	// RequiresCurrentSolution marks a listener that relies on
	// NewCurrentSolution firing (only true for searches with a "current"
	// distinct from "best-ever" — see RunInfo.SupportsCurrentSolution).
	RequiresCurrentSolution() bool
}

// BaseListener is a Listener whose every callback is a no-op. Embed it in
// a concrete listener type to implement only the callbacks of interest,
// the same "embed to get defaults" shape as http.Handler middleware or
// io.Reader wrappers elsewhere in idiomatic Go.
type BaseListener[S any, D any] struct{}

func (BaseListener[S, D]) Started(*Search[S, D])                                    {}
func (BaseListener[S, D]) Stopped(*Search[S, D])                                    {}
func (BaseListener[S, D]) NewBestSolution(*Search[S, D], S, Evaluation, Validation) {}
func (BaseListener[S, D]) NewCurrentSolution(*Search[S, D], S)                      {}
func (BaseListener[S, D]) StepCompleted(*Search[S, D], int)                         {}
func (BaseListener[S, D]) StatusChanged(*Search[S, D], Status, Status)              {}
func (BaseListener[S, D]) RequiresCurrentSolution() bool                            { return false }
