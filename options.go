package respan

import "github.com/coregx/respan/engine"

// Backend names the automaton a pattern executes on.
type Backend = engine.Backend

const (
	// BackendStd runs on Go's regexp package.
	BackendStd = engine.BackendStd

	// BackendRE2 runs on RE2 compiled to WebAssembly (github.com/wasilibs/go-re2).
	BackendRE2 = engine.BackendRE2
)

// Options controls how a pattern is compiled.
//
// Use DefaultOptions and modify fields; the zero value is case-insensitive.
// Options are plain values: changing a field after CompileWithOptions has
// returned does not affect the compiled Pattern.
//
// Example:
//
//	opts := respan.DefaultOptions()
//	opts.CaseSensitive = false
//	opts.LongestMatch = true
//	re, err := respan.CompileWithOptions("(ab|a)b", opts)
type Options struct {
	// CaseSensitive matches letters exactly. Default: true
	CaseSensitive bool `mapstructure:"case_sensitive"`

	// POSIXSyntax restricts patterns to POSIX ERE syntax. Default: false
	POSIXSyntax bool `mapstructure:"posix_syntax"`

	// LongestMatch selects leftmost-longest instead of leftmost-first
	// matching. Default: false
	LongestMatch bool `mapstructure:"longest_match"`

	// WordBoundary allows \b and \B. Only checked with POSIXSyntax; Perl
	// syntax always allows them. Default: false
	WordBoundary bool `mapstructure:"word_boundary"`

	// PerlClasses allows \d \s \w \D \S \W. Only checked with POSIXSyntax;
	// Perl syntax always allows them. Neither this nor WordBoundary admits
	// other Perl extensions ((?:...), (?i), non-greedy repeats, \A, \z, \Q)
	// in POSIX syntax. Default: false
	PerlClasses bool `mapstructure:"perl_classes"`

	// Literal interprets the pattern as a literal string. Default: false
	Literal bool `mapstructure:"literal"`

	// DotNL lets . match a newline. Default: false
	DotNL bool `mapstructure:"dot_nl"`

	// OneLine makes ^ and $ match only at the start and end of the text.
	// Only checked with POSIXSyntax; Perl syntax is always one-line unless
	// the pattern sets (?m). Default: false
	OneLine bool `mapstructure:"one_line"`

	// NeverCapture parses all parentheses as non-capturing. Default: false
	NeverCapture bool `mapstructure:"never_capture"`

	// Backend selects the automaton. Default: BackendStd
	Backend Backend `mapstructure:"backend"`

	// Prefilter enables literal-set rejection before the engine runs.
	// Default: true
	Prefilter bool `mapstructure:"prefilter"`
}

// DefaultOptions returns case-sensitive, Perl-syntax, leftmost-first options
// on the standard backend with prefiltering enabled.
func DefaultOptions() Options {
	return Options{
		CaseSensitive: true,
		Backend:       BackendStd,
		Prefilter:     true,
	}
}

func (o Options) engineConfig() engine.Config {
	return engine.Config{
		FoldCase:     !o.CaseSensitive,
		POSIX:        o.POSIXSyntax,
		Longest:      o.LongestMatch,
		WordBoundary: o.WordBoundary,
		PerlClasses:  o.PerlClasses,
		Literal:      o.Literal,
		DotNL:        o.DotNL,
		OneLine:      o.OneLine,
		NeverCapture: o.NeverCapture,
		Backend:      o.Backend,
	}
}
