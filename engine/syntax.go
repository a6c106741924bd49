package engine

import (
	"regexp/syntax"
	"strings"
)

// flags translates the option set into regexp/syntax parse flags.
//
// Perl mode always has Perl classes and word boundaries. POSIX mode only gets
// them through PerlX, which also brings in the rest of the Perl extensions;
// checkGatedEscapes narrows that back down to what was asked for.
func (c Config) flags() syntax.Flags {
	var f syntax.Flags
	if c.POSIX {
		f = syntax.POSIX
		if c.PerlClasses || c.WordBoundary {
			f |= syntax.PerlX
		}
		if c.OneLine {
			f |= syntax.OneLine
		}
	} else {
		f = syntax.Perl
	}
	if c.FoldCase {
		f |= syntax.FoldCase
	}
	if c.Literal {
		f |= syntax.Literal
	}
	if c.DotNL {
		f |= syntax.DotNL
	}
	return f
}

// checkGatedEscapes narrows POSIX syntax with PerlX back to the extensions
// that were asked for: \d \s \w (and negations) need PerlClasses, \b \B
// need WordBoundary, and the rest of PerlX is rejected: (?...) groups and
// flags, non-greedy repetition, \A \z \Q \C.
func checkGatedEscapes(pattern string, c Config) error {
	if !c.POSIX || c.Literal || (!c.PerlClasses && !c.WordBoundary) {
		// Without PerlX the parser rejects all of these itself.
		return nil
	}

	prevRepeat := false
	for i := 0; i < len(pattern); i++ {
		repeat := false
		switch ch := pattern[i]; {
		case ch == '\\':
			if i+1 >= len(pattern) {
				return nil
			}
			e := pattern[i+1]
			switch {
			case strings.IndexByte("AzQC", e) >= 0,
				strings.IndexByte("dDsSwW", e) >= 0 && !c.PerlClasses,
				(e == 'b' || e == 'B') && !c.WordBoundary:
				return &syntax.Error{Code: syntax.ErrInvalidEscape, Expr: pattern[i : i+2]}
			}
			i++
		case ch == '[':
			end, err := skipClass(pattern, i, c)
			if err != nil {
				return err
			}
			i = end
		case ch == '(' && i+1 < len(pattern) && pattern[i+1] == '?':
			return &syntax.Error{Code: syntax.ErrMissingRepeatArgument, Expr: "(?"}
		case ch == '?' && prevRepeat:
			return &syntax.Error{Code: syntax.ErrInvalidRepeatOp, Expr: pattern[i-1 : i+1]}
		case ch == '*' || ch == '+' || ch == '?':
			repeat = true
		case ch == '{':
			if end := repeatEnd(pattern, i); end > 0 {
				i = end
				repeat = true
			}
		}
		prevRepeat = repeat
	}
	return nil
}

// skipClass returns the offset of the ']' closing the bracket expression
// at pattern[start], checking the escapes inside it.
func skipClass(pattern string, start int, c Config) (int, error) {
	i := start + 1
	if i < len(pattern) && pattern[i] == '^' {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for ; i < len(pattern); i++ {
		switch {
		case pattern[i] == ']':
			return i, nil
		case strings.HasPrefix(pattern[i:], "[:"):
			if end := strings.Index(pattern[i+2:], ":]"); end >= 0 {
				i += 2 + end + 1
			}
		case pattern[i] == '\\' && i+1 < len(pattern):
			e := pattern[i+1]
			if strings.IndexByte("dDsSwW", e) >= 0 && !c.PerlClasses {
				return 0, &syntax.Error{Code: syntax.ErrInvalidEscape, Expr: pattern[i : i+2]}
			}
			i++
		}
	}
	// Unterminated; the parser reports it.
	return len(pattern), nil
}

// repeatEnd returns the offset of the '}' ending a {n}, {n,} or {n,m}
// repetition at pattern[start], or 0 when the brace is a literal.
func repeatEnd(pattern string, start int) int {
	i := start + 1
	digits := func() int {
		n := 0
		for i < len(pattern) && pattern[i] >= '0' && pattern[i] <= '9' {
			i++
			n++
		}
		return n
	}
	if digits() == 0 {
		return 0
	}
	if i < len(pattern) && pattern[i] == ',' {
		i++
		digits()
	}
	if i < len(pattern) && pattern[i] == '}' {
		return i
	}
	return 0
}

// stripCaptures replaces every capture group with its contents.
func stripCaptures(re *syntax.Regexp) *syntax.Regexp {
	for i, sub := range re.Sub {
		re.Sub[i] = stripCaptures(sub)
	}
	if re.Op == syntax.OpCapture {
		return re.Sub[0]
	}
	return re
}

// contextSensitive reports whether a match can depend on bytes before the
// search start: line/text begin anchors and word boundaries.
func contextSensitive(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	}
	for _, sub := range re.Sub {
		if contextSensitive(sub) {
			return true
		}
	}
	return false
}

// anchor wraps re in \A...\z (both) or \A... (start only).
func anchor(re *syntax.Regexp, end bool) *syntax.Regexp {
	subs := []*syntax.Regexp{{Op: syntax.OpBeginText}, re}
	if end {
		subs = append(subs, &syntax.Regexp{Op: syntax.OpEndText})
	}
	return &syntax.Regexp{Op: syntax.OpConcat, Sub: subs}
}
