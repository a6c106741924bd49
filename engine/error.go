package engine

import (
	"errors"
	"regexp/syntax"
	"strings"
)

// Common engine errors
var (
	// ErrResourceExhausted indicates the compiled program would exceed the
	// backend's size or nesting limits. It is reported separately from
	// syntax errors: the pattern may be valid, just too large to hold.
	ErrResourceExhausted = errors.New("resource exhausted compiling pattern")

	// ErrUnknownBackend indicates a Config named a backend that is not built in
	ErrUnknownBackend = errors.New("unknown engine backend")
)

// CompileError wraps a pattern compilation failure with the pattern text.
//
// Error returns the underlying message unchanged so diagnostics read the same
// as those of the regexp package ("error parsing regexp: ...").
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// exhausted reports whether err is a size/depth limit rather than bad syntax.
func exhausted(err error) bool {
	var se *syntax.Error
	if errors.As(err, &se) {
		return se.Code == syntax.ErrLarge || se.Code == syntax.ErrNestingDepth
	}
	// RE2 reports program-size failures as "pattern too large - compile failed".
	return strings.Contains(err.Error(), "too large")
}
