package respan

import (
	"errors"
	"fmt"

	"github.com/coregx/respan/engine"
)

// Common errors
var (
	// ErrResourceExhausted indicates the pattern could not be compiled within
	// the engine's size or nesting limits. Compile returns a nil Pattern with
	// this error; it is never reported for ordinary syntax errors.
	ErrResourceExhausted = engine.ErrResourceExhausted

	// ErrUnknownBackend indicates Options.Backend names no built-in backend
	ErrUnknownBackend = engine.ErrUnknownBackend

	// ErrInvalidPattern indicates an operation on a pattern whose syntax
	// did not compile. Wrapped together with the *CompileError.
	ErrInvalidPattern = errors.New("respan: invalid pattern")

	// ErrNilPattern indicates an operation on a nil *Pattern
	ErrNilPattern = errors.New("respan: nil pattern")

	// ErrClosed indicates an operation on a Pattern after Close
	ErrClosed = errors.New("respan: pattern closed")

	// ErrNoMatch indicates the pattern did not match. It is an expected
	// outcome, returned only by the probe/fill (Into) variants.
	ErrNoMatch = errors.New("respan: no match")

	// ErrShortBuffer indicates the destination buffer is smaller than the
	// result. The accompanying size is the exact size required.
	ErrShortBuffer = errors.New("respan: output buffer too small")

	// ErrInvalidTemplate indicates a malformed rewrite template
	ErrInvalidTemplate = errors.New("respan: invalid rewrite template")
)

// CompileError describes a pattern that failed to parse or compile.
// It unwraps to the underlying *syntax.Error or backend error.
type CompileError = engine.CompileError

// TemplateError describes a malformed rewrite template.
type TemplateError struct {
	Template string
	Offset   int
	Reason   string
}

// Error implements the error interface
func (e *TemplateError) Error() string {
	return fmt.Sprintf("invalid rewrite template %q at offset %d: %s", e.Template, e.Offset, e.Reason)
}

// Unwrap returns ErrInvalidTemplate so errors.Is matches every TemplateError.
func (e *TemplateError) Unwrap() error {
	return ErrInvalidTemplate
}
