// Package logging constructs the process-wide structured logger. The
// server logs one line per client connect/disconnect, a startup line
// and warnings for failed bus refreshes; command dispatch is not
// logged, and fatal startup errors are printed to stderr by the command
// rather than through this logger.
package logging

import "go.uber.org/zap"

// New builds a production logger, or a development logger (human
// readable, DPanic on invariant violations) when debug is set.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	return zap.NewProduction()
}

// Noop returns a logger that discards everything, for tests that don't
// want log noise but still need to pass a *zap.Logger through.
func Noop() *zap.Logger {
	return zap.NewNop()
}
