package respan

// FullMatch reports whether the whole of buf matches the pattern.
//
// Example:
//
//	re := respan.MustCompile(`\d+`)
//	re.FullMatch([]byte("123"))  // true
//	re.FullMatch([]byte("123a")) // false
func (p *Pattern) FullMatch(buf []byte) bool {
	_, ok := p.Match(buf, AnchorBoth, 0)
	return ok
}

// PartialMatch reports whether the pattern matches anywhere in buf.
func (p *Pattern) PartialMatch(buf []byte) bool {
	_, ok := p.Match(buf, Unanchored, 0)
	return ok
}

// Match runs one match attempt against buf.
//
// capacity bounds the number of spans returned: the whole match first, then
// groups 1..N. A capacity below 1+NumGroups silently drops the trailing
// groups. A capacity of 0 is a boolean probe and returns a nil Match.
// A negative capacity, an unknown anchor or a pattern that is not OK report
// no match.
//
// Spans are offsets into buf; buf is neither copied nor retained.
//
// Example:
//
//	re := respan.MustCompile(`(\d+)-(\d+)`)
//	m, ok := re.Match([]byte("12-34"), respan.AnchorBoth, 2)
//	// ok == true, m == [{0 5 true} {0 2 true}]
func (p *Pattern) Match(buf []byte, anchor Anchor, capacity int) (Match, bool) {
	if capacity < 0 {
		return nil, false
	}
	if capacity == 0 {
		_, ok := p.MatchInto(nil, buf, anchor)
		return nil, ok
	}
	if !p.OK() {
		return nil, false
	}
	dst := make(Match, min(capacity, 1+p.prog.NumGroups))
	n, ok := p.MatchInto(dst, buf, anchor)
	if !ok {
		return nil, false
	}
	return dst[:n], true
}

// MatchInto is Match with a caller-owned span buffer. It writes
// min(len(dst), 1+NumGroups) spans and returns how many it wrote.
// An empty dst is a probe. Nothing is written when there is no match.
func (p *Pattern) MatchInto(dst []Span, buf []byte, anchor Anchor) (int, bool) {
	if p.usable() != nil {
		return 0, false
	}
	re := p.prog.Variant(anchor)
	if re == nil {
		return 0, false
	}
	if p.rejects(buf, 0) {
		return 0, false
	}

	if len(dst) == 0 {
		return 0, re.Match(buf)
	}
	if len(dst) == 1 {
		loc := re.FindIndex(buf)
		if loc == nil {
			return 0, false
		}
		return fillSpans(dst, loc, 0), true
	}
	loc := re.FindSubmatchIndex(buf)
	if loc == nil {
		return 0, false
	}
	return fillSpans(dst, loc, 0), true
}

// Captures returns the whole match and every group of the leftmost match in
// buf as subslices of buf. Groups that did not participate are nil; groups
// that matched the empty string are empty and non-nil.
//
// Example:
//
//	re := respan.MustCompile(`(\w+)@(\w+)?`)
//	c := re.Captures([]byte("to: bob@"))
//	// c[0] == "bob@", c[1] == "bob", c[2] == nil
func (p *Pattern) Captures(buf []byte) [][]byte {
	return p.captures(buf, Unanchored)
}

// FullCaptures is Captures for a match that must cover all of buf.
func (p *Pattern) FullCaptures(buf []byte) [][]byte {
	return p.captures(buf, AnchorBoth)
}

func (p *Pattern) captures(buf []byte, anchor Anchor) [][]byte {
	if !p.OK() {
		return nil
	}
	m, ok := p.Match(buf, anchor, 1+p.prog.NumGroups)
	if !ok {
		return nil
	}
	out := make([][]byte, len(m))
	for i, s := range m {
		out[i] = s.Bytes(buf)
	}
	return out
}
