package logger

import "github.com/doeshing/pamash/internal/ports"

// ForBackend picks a logger implementation by config value. Unknown
// backends fall back to the stdlib logger.
func ForBackend(backend string, verbose bool) ports.Logger {
	if backend == "charm" {
		return NewCharm(verbose)
	}
	return NewStd(verbose)
}
