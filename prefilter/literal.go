package prefilter

import (
	"regexp/syntax"
	"slices"
	"unicode/utf8"
)

// Config limits literal extraction.
type Config struct {
	// MaxLiterals caps the size of the extracted set. Alternations that
	// produce more literals disable the prefilter. Default: 64.
	MaxLiterals int

	// MaxLiteralLen truncates each literal. A truncated literal is still a
	// valid prefix. Default: 64.
	MaxLiteralLen int

	// MaxClassSize bounds how many runes a character class may hold before
	// it stops being expanded into single-rune literals. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

const maxDepth = 100

// Prefixes returns a set of literals such that every match of re begins with
// one of them, or nil when no such finite set can be derived.
//
// Unlike a heuristic prefix guess, the result is exact in the "necessary"
// sense: a haystack region containing none of the literals cannot contain a
// match. Patterns that can match the empty string always return nil, as do
// prefixes needing U+FFFD, which also matches any invalid UTF-8 byte.
//
//	"hello"          → ["hello"]
//	"(foo|bar)\d+"   → ["foo", "bar"]
//	"[ab]c"          → ["a", "b"]
//	"x+y"            → ["x"]
//	"foo|.*"         → nil
func Prefixes(re *syntax.Regexp, cfg Config) [][]byte {
	lits := prefixes(re, cfg, 0)
	if len(lits) == 0 {
		return nil
	}
	return lits
}

func prefixes(re *syntax.Regexp, cfg Config, depth int) [][]byte {
	if depth > maxDepth {
		return nil
	}

	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 || len(re.Rune) == 0 {
			return nil
		}
		// Engines read each invalid input byte as U+FFFD, so its UTF-8
		// encoding need not appear in a matching buffer.
		if slices.Contains(re.Rune, utf8.RuneError) {
			return nil
		}
		b := encodeRunes(re.Rune)
		if len(b) > cfg.MaxLiteralLen {
			b = b[:cfg.MaxLiteralLen]
		}
		return [][]byte{b}

	case syntax.OpCapture:
		return prefixes(re.Sub[0], cfg, depth+1)

	case syntax.OpConcat:
		// Zero-width assertions do not consume input; the first consuming
		// sub-expression decides the prefix.
		for _, sub := range re.Sub {
			switch sub.Op {
			case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpWordBoundary,
				syntax.OpNoWordBoundary, syntax.OpEmptyMatch:
				continue
			}
			return prefixes(sub, cfg, depth+1)
		}
		return nil

	case syntax.OpAlternate:
		var all [][]byte
		for _, sub := range re.Sub {
			lits := prefixes(sub, cfg, depth+1)
			if lits == nil {
				// One unconstrained branch frees the whole alternation.
				return nil
			}
			all = append(all, lits...)
			if len(all) > cfg.MaxLiterals {
				return nil
			}
		}
		return all

	case syntax.OpCharClass:
		return expandClass(re, cfg)

	case syntax.OpPlus:
		return prefixes(re.Sub[0], cfg, depth+1)

	case syntax.OpRepeat:
		if re.Min < 1 {
			return nil
		}
		return prefixes(re.Sub[0], cfg, depth+1)
	}

	// Star, quest, wildcards, end anchors, empty match.
	return nil
}

// expandClass turns a small character class into one literal per rune.
func expandClass(re *syntax.Regexp, cfg Config) [][]byte {
	size := 0
	for i := 0; i+1 < len(re.Rune); i += 2 {
		if re.Rune[i] <= utf8.RuneError && utf8.RuneError <= re.Rune[i+1] {
			return nil
		}
		size += int(re.Rune[i+1]-re.Rune[i]) + 1
		if size > cfg.MaxClassSize || size > cfg.MaxLiterals {
			return nil
		}
	}
	if size == 0 {
		return nil
	}

	lits := make([][]byte, 0, size)
	for i := 0; i+1 < len(re.Rune); i += 2 {
		for r := re.Rune[i]; r <= re.Rune[i+1]; r++ {
			lits = append(lits, utf8.AppendRune(nil, r))
		}
	}
	return lits
}

func encodeRunes(runes []rune) []byte {
	b := make([]byte, 0, len(runes))
	for _, r := range runes {
		b = utf8.AppendRune(b, r)
	}
	return b
}
