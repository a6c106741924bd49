package respan

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/coregx/respan/engine"
	"github.com/coregx/respan/prefilter"
)

// Pattern is a compiled pattern.
//
// A Pattern is created by Compile or CompileWithOptions and is read-only
// afterwards: it is safe to use concurrently from multiple goroutines once
// Compile has returned. Iterators borrow their Pattern and must not be used
// after it is closed.
//
// A Pattern whose syntax failed to compile is still a valid value: OK reports
// false, Diagnostic describes the problem, and every match operation reports
// no match.
//
// Example:
//
//	re, _ := respan.Compile(`(\d+)-(\d+)`)
//	m, ok := re.Match([]byte("12-34"), respan.AnchorBoth, 3)
//	// ok == true, m == [{0 5 true} {0 2 true} {3 2 true}]
type Pattern struct {
	pattern string
	opts    Options
	prog    *engine.Program
	pf      *prefilter.Prefilter
	err     error
	closed  atomic.Bool
}

// Compile compiles pattern with DefaultOptions.
//
// Invalid syntax does not produce an error: the returned Pattern reports
// OK() == false. The error is non-nil, and the Pattern nil, only when the
// pattern exceeds the engine's resource limits (ErrResourceExhausted).
//
// Example:
//
//	re, err := respan.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err) // resource exhaustion only
//	}
//	if !re.OK() {
//	    log.Fatal(re.Diagnostic())
//	}
func Compile(pattern string) (*Pattern, error) {
	return CompileWithOptions(pattern, DefaultOptions())
}

// CompileWithOptions compiles pattern with the given options.
//
// Besides ErrResourceExhausted, an Options.Backend naming no built-in backend
// returns ErrUnknownBackend and a nil Pattern.
func CompileWithOptions(pattern string, opts Options) (*Pattern, error) {
	log := Logger()

	prog, err := engine.Compile(pattern, opts.engineConfig())
	if err != nil {
		if errors.Is(err, ErrResourceExhausted) || errors.Is(err, ErrUnknownBackend) {
			log.Debug().Str("pattern", pattern).Err(err).Msg("respan: compile aborted")
			return nil, err
		}
		log.Debug().Str("pattern", pattern).Err(err).Msg("respan: invalid pattern")
		return &Pattern{pattern: pattern, opts: opts, err: err}, nil
	}

	p := &Pattern{pattern: pattern, opts: opts, prog: prog}
	if opts.Prefilter {
		p.pf = prefilter.New(prog.Tree, prefilter.DefaultConfig())
	}

	ev := log.Debug().
		Str("pattern", pattern).
		Str("backend", string(prog.Backend())).
		Int("groups", prog.NumGroups).
		Bool("context_sensitive", prog.ContextSensitive)
	if p.pf != nil {
		ev = ev.Int("prefilter_literals", len(p.pf.Literals()))
	}
	ev.Msg("respan: compiled")

	return p, nil
}

// MustCompile compiles pattern with DefaultOptions and panics if it is not OK.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var dateRe = respan.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("respan: Compile(`" + pattern + "`): " + err.Error())
	}
	if !p.OK() {
		panic("respan: Compile(`" + pattern + "`): " + p.Diagnostic())
	}
	return p
}

// OK reports whether the pattern compiled and is still open.
func (p *Pattern) OK() bool {
	return p.usable() == nil
}

// Diagnostic returns the compile error text, or "" when OK.
//
// For a nil or closed Pattern it returns the text of ErrNilPattern or
// ErrClosed.
func (p *Pattern) Diagnostic() string {
	switch {
	case p == nil:
		return ErrNilPattern.Error()
	case p.err != nil:
		return p.err.Error()
	case p.closed.Load():
		return ErrClosed.Error()
	}
	return ""
}

// Err returns the *CompileError for an invalid pattern, ErrNilPattern or
// ErrClosed for an unusable one, or nil.
func (p *Pattern) Err() error {
	switch {
	case p == nil:
		return ErrNilPattern
	case p.err != nil:
		return p.err
	case p.closed.Load():
		return ErrClosed
	}
	return nil
}

// NumGroups returns the number of capturing groups, excluding the whole
// match. It is 0 when the pattern is not OK.
func (p *Pattern) NumGroups() int {
	if !p.OK() {
		return 0
	}
	return p.prog.NumGroups
}

// GroupNames returns the capture group names indexed by group number.
// Index 0 and unnamed groups are "". Nil when the pattern is not OK.
func (p *Pattern) GroupNames() []string {
	if !p.OK() {
		return nil
	}
	return p.prog.SubexpNames()
}

// GroupIndex returns the number of the group called name, or -1.
func (p *Pattern) GroupIndex(name string) int {
	if name == "" {
		return -1
	}
	for i, n := range p.GroupNames() {
		if n == name {
			return i
		}
	}
	return -1
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.pattern
}

// Options returns the options the pattern was compiled with.
func (p *Pattern) Options() Options {
	if p == nil {
		return Options{}
	}
	return p.opts
}

// Close releases the pattern. Subsequent operations report no match.
// Close is idempotent and safe on a nil Pattern.
func (p *Pattern) Close() {
	if p == nil {
		return
	}
	if p.closed.CompareAndSwap(false, true) {
		Logger().Debug().Str("pattern", p.pattern).Msg("respan: closed")
	}
}

// usable returns nil when operations may run on the pattern.
func (p *Pattern) usable() error {
	switch {
	case p == nil:
		return ErrNilPattern
	case p.err != nil:
		return fmt.Errorf("%w: %w", ErrInvalidPattern, p.err)
	case p.closed.Load():
		return ErrClosed
	}
	return nil
}

// rejects reports whether the prefilter proves buf[at:] holds no match.
func (p *Pattern) rejects(buf []byte, at int) bool {
	if p.pf == nil {
		return false
	}
	_, ok := p.pf.Candidate(buf, at)
	return !ok
}
