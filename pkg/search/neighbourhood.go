package search

import "math/rand"

// Neighbourhood enumerates or samples the moves reachable from a solution
// of type S.
type Neighbourhood[S any] interface {
	// RandomMove returns a uniformly chosen move valid from s, or
	// (nil, false) if no move exists from s in this neighbourhood.
	RandomMove(s S, rng *rand.Rand) (Move[S], bool)

	// AllMoves returns a finite, eagerly materialized enumeration of
	// every move valid from s. Order is unspecified but must be
	// deterministic given s. May be empty.
	AllMoves(s S) []Move[S]
}
