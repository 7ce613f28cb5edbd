package search

import "github.com/benbjohnson/clock"

// Clock is the time source a Search uses to measure elapsed run time.
// It is the benbjohnson/clock interface directly: production code gets
// the real wall clock via clock.New(), while tests inject clock.NewMock()
// to make wall-clock stop criteria and listeners deterministic without
// sleeping.
type Clock = clock.Clock

// SystemClock is the default, real-time Clock used when a Search is not
// configured with WithClock.
var SystemClock Clock = clock.New()
