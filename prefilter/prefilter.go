// Package prefilter rejects haystacks that cannot contain a match before the
// regex engine runs.
//
// A Prefilter holds the exact set of literals every match must begin with
// (see Prefixes) in an Aho-Corasick automaton. If none of the literals occurs
// in the searched region, the region has no match and the engine is skipped.
// Positive answers are only candidates: the engine still decides.
package prefilter

import (
	"regexp/syntax"

	"github.com/coregx/ahocorasick"
)

// Prefilter is a literal-set candidate finder. It is safe for concurrent use.
type Prefilter struct {
	auto     *ahocorasick.Automaton
	literals [][]byte
}

// New builds a Prefilter for re, or returns nil when the pattern has no
// usable literal prefix set.
func New(re *syntax.Regexp, cfg Config) *Prefilter {
	lits := Prefixes(re, cfg)
	if lits == nil {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Prefilter{auto: auto, literals: lits}
}

// Literals returns the literal set. The slice is shared and must not be
// modified.
func (p *Prefilter) Literals() [][]byte {
	return p.literals
}

// IsMatch reports whether any literal occurs in haystack.
func (p *Prefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

// Candidate returns the start of some literal occurrence lying entirely in
// haystack[at:]. The returned occurrence is not necessarily the leftmost one;
// callers only rely on "some occurrence exists at or after at".
func (p *Prefilter) Candidate(haystack []byte, at int) (int, bool) {
	if at >= len(haystack) {
		return -1, false
	}
	m := p.auto.Find(haystack, at)
	if m == nil {
		return -1, false
	}
	return m.Start, true
}
