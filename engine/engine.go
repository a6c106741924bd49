// Package engine is the boundary between the matching facade and the regex
// automaton that actually executes patterns.
//
// Patterns are parsed once with regexp/syntax under the caller's option set,
// validated, and re-emitted in canonical Perl syntax. The canonical text is
// then compiled on a backend:
//   - BackendStd: Go's regexp package (the Go port of RE2)
//   - BackendRE2: github.com/wasilibs/go-re2 (C++ RE2 compiled to WebAssembly)
//
// Parsing on the Go side keeps syntax diagnostics, option semantics and group
// numbering identical across backends.
package engine

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"sync"

	"github.com/wasilibs/go-re2"
)

// Backend names an automaton implementation.
type Backend string

const (
	// BackendStd executes on the regexp package. It is the default.
	BackendStd Backend = "std"

	// BackendRE2 executes on RE2 via WebAssembly.
	BackendRE2 Backend = "re2"
)

// Backends lists every backend compiled into this build.
func Backends() []Backend {
	return []Backend{BackendStd, BackendRE2}
}

// Regexp is the subset of the stdlib regexp API the facade drives. Both
// *regexp.Regexp and *re2.Regexp satisfy it.
//
// Index slices follow the stdlib convention: pairs of byte offsets, -1 for a
// group that did not participate.
type Regexp interface {
	Match(b []byte) bool
	FindIndex(b []byte) []int
	FindSubmatchIndex(b []byte) []int
	FindAllSubmatchIndex(b []byte, n int) [][]int
	NumSubexp() int
	SubexpNames() []string
}

// Config is the engine-level view of the option set.
type Config struct {
	FoldCase     bool
	POSIX        bool
	Longest      bool
	WordBoundary bool
	PerlClasses  bool
	Literal      bool
	DotNL        bool
	OneLine      bool
	NeverCapture bool
	Backend      Backend
}

// Anchor selects which compiled variant of a program to run.
type Anchor int

const (
	// Unanchored searches anywhere in the input.
	Unanchored Anchor = iota

	// AnchorStart requires the match to begin at the start of the input.
	AnchorStart

	// AnchorBoth requires the match to span the whole input.
	AnchorBoth
)

// Program is a compiled pattern ready for execution.
//
// A Program is safe for concurrent use.
type Program struct {
	// Tree is the parsed pattern, after capture stripping.
	Tree *syntax.Regexp

	// NumGroups is the number of capture groups, excluding group 0.
	NumGroups int

	// ContextSensitive is true when a match may depend on bytes before the
	// search start (^, \A, \b, \B). Such programs cannot be run on a suffix
	// window of the input.
	ContextSensitive bool

	backend Backend
	longest bool
	search  Regexp
	full    Regexp

	startOnce sync.Once
	start     Regexp
}

// Compile parses pattern under cfg and compiles it on the configured backend.
//
// Syntax errors are returned as *CompileError. Size and nesting failures are
// additionally wrapped with ErrResourceExhausted.
func Compile(pattern string, cfg Config) (*Program, error) {
	switch cfg.Backend {
	case "":
		cfg.Backend = BackendStd
	case BackendStd, BackendRE2:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if err := checkGatedEscapes(pattern, cfg); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	tree, err := syntax.Parse(pattern, cfg.flags())
	if err != nil {
		return nil, wrapCompileError(pattern, err)
	}
	if cfg.NeverCapture {
		tree = stripCaptures(tree)
	}

	prog := &Program{
		Tree:             tree,
		NumGroups:        tree.MaxCap(),
		ContextSensitive: contextSensitive(tree),
		backend:          cfg.Backend,
		longest:          cfg.Longest,
	}

	if prog.search, err = compileOn(cfg.Backend, tree.String(), cfg.Longest); err != nil {
		return nil, wrapCompileError(pattern, err)
	}
	if prog.full, err = compileOn(cfg.Backend, anchor(tree, true).String(), cfg.Longest); err != nil {
		return nil, wrapCompileError(pattern, err)
	}
	return prog, nil
}

// Backend returns the backend the program runs on.
func (p *Program) Backend() Backend {
	return p.backend
}

// Search returns the unanchored variant.
func (p *Program) Search() Regexp {
	return p.search
}

// Variant returns the compiled variant for the given anchor mode, or nil for
// an unknown mode. The start-anchored variant is compiled on first use.
func (p *Program) Variant(a Anchor) Regexp {
	switch a {
	case Unanchored:
		return p.search
	case AnchorBoth:
		return p.full
	case AnchorStart:
		p.startOnce.Do(func() {
			// The same tree already compiled unanchored and fully anchored;
			// a failure here leaves start nil and reads as no match.
			p.start, _ = compileOn(p.backend, anchor(p.Tree, false).String(), p.longest)
		})
		return p.start
	}
	return nil
}

// SubexpNames returns group names indexed by group number; unnamed groups
// and group 0 are empty.
func (p *Program) SubexpNames() []string {
	return p.search.SubexpNames()
}

func compileOn(b Backend, expr string, longest bool) (Regexp, error) {
	switch b {
	case BackendStd:
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		if longest {
			re.Longest()
		}
		return re, nil
	case BackendRE2:
		re, err := re2.Compile(expr)
		if err != nil {
			return nil, err
		}
		if longest {
			re.Longest()
		}
		return re, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
}

func wrapCompileError(pattern string, err error) error {
	ce := &CompileError{Pattern: pattern, Err: err}
	if exhausted(err) {
		return fmt.Errorf("%w: %w", ErrResourceExhausted, ce)
	}
	return ce
}
