package search

import "go.uber.org/zap"

// newNopLogger returns a SugaredLogger that discards everything, used as
// the default when a Search is built without WithLogger.
func newNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
