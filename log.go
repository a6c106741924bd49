package respan

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMu     sync.RWMutex
	pkgLogger = zerolog.Nop()
)

// SetLogger installs the logger used for compile and lifecycle events.
// The package logs nothing until a logger is installed.
//
// Example:
//
//	respan.SetLogger(zerolog.New(os.Stderr).Level(zerolog.DebugLevel))
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	pkgLogger = l
	logMu.Unlock()
}

// Logger returns the package logger, for use by the companion packages.
func Logger() *zerolog.Logger {
	logMu.RLock()
	l := pkgLogger
	logMu.RUnlock()
	return &l
}
