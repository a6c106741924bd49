package respan

import (
	"iter"
	"unicode/utf8"
)

// minBatch is the first batch size for context-sensitive enumeration.
const minBatch = 8

// Iterator enumerates successive non-overlapping matches of a Pattern in one
// buffer.
//
// Each search starts where the previous match ended. After an empty match
// the cursor steps one UTF-8 sequence further, and an empty match that starts
// exactly where the previous match ended is skipped, so enumeration always
// terminates after at most len(buf)+1 matches:
//
//	a* over "baa"  →  [0,0) [1,3)
//
// Bytes before the cursor remain visible to ^, \A, \b and \B.
//
// An Iterator borrows both its Pattern and its buffer. It must have a single
// consumer; it is not safe for concurrent use.
type Iterator struct {
	p   *Pattern
	buf []byte

	pos     int
	prevEnd int
	done    bool

	// Context-sensitive patterns enumerate through the backend's all-matches
	// primitive: batch holds the first want matches of the whole buffer.
	batch   [][]int
	want    int
	yielded int

	// cand is a prefilter candidate at or after pos, or -1.
	cand int
}

// Iter returns an iterator over the matches of p in buf, positioned at the
// start of buf. An iterator over a pattern that is not OK is exhausted from
// the start.
//
// Example:
//
//	it := re.Iter(buf)
//	defer it.Close()
//	for {
//	    s, ok := it.Next()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(s.Start, s.Len)
//	}
func (p *Pattern) Iter(buf []byte) *Iterator {
	it := &Iterator{p: p, buf: buf, prevEnd: -1, cand: -1}
	if !p.OK() {
		it.done = true
	}
	return it
}

// Next advances to the next match and returns its whole-match span.
func (it *Iterator) Next() (Span, bool) {
	if it == nil {
		return Span{}, false
	}
	loc := it.advance(false)
	if loc == nil {
		return Span{}, false
	}
	var s [1]Span
	fillSpans(s[:], loc, 0)
	return s[0], true
}

// NextCaptures advances to the next match and returns up to capacity spans
// of it, truncated as in Pattern.Match. A capacity of 0 advances without
// reporting spans; a negative capacity reports false without advancing.
func (it *Iterator) NextCaptures(capacity int) (Match, bool) {
	if it == nil || capacity < 0 {
		return nil, false
	}
	if capacity == 0 {
		return nil, it.advance(false) != nil
	}
	if !it.p.OK() {
		it.done = true
		return nil, false
	}
	m := make(Match, min(capacity, 1+it.p.prog.NumGroups))
	n, ok := it.NextInto(m)
	if !ok {
		return nil, false
	}
	return m[:n], true
}

// NextInto advances to the next match and writes up to len(dst) of its spans
// into dst, returning how many were written.
func (it *Iterator) NextInto(dst []Span) (int, bool) {
	if it == nil {
		return 0, false
	}
	loc := it.advance(len(dst) > 1)
	if loc == nil {
		return 0, false
	}
	return fillSpans(dst, loc, 0), true
}

// Cursor returns the offset the next search starts from, clamped to len(buf).
func (it *Iterator) Cursor() int {
	if it == nil {
		return 0
	}
	return min(it.pos, len(it.buf))
}

// Exhausted reports whether the iterator has reported its last match.
func (it *Iterator) Exhausted() bool {
	return it == nil || it.done
}

// Close exhausts the iterator and drops its references to the pattern and
// buffer. Close is idempotent.
func (it *Iterator) Close() {
	if it == nil {
		return
	}
	it.done = true
	it.p = nil
	it.buf = nil
	it.batch = nil
}

// advance returns the next accepted match as absolute index pairs, or nil
// once exhausted. Group indices are only guaranteed when groups is true.
func (it *Iterator) advance(groups bool) []int {
	if it.done {
		return nil
	}
	if it.p.usable() != nil {
		it.done = true
		return nil
	}
	if it.p.prog.ContextSensitive {
		return it.advanceBatched()
	}
	return it.advanceWindow(groups)
}

// advanceWindow searches the suffix buf[pos:], which is equivalent to a
// search from pos for patterns that never look behind the search start.
func (it *Iterator) advanceWindow(groups bool) []int {
	re := it.p.prog.Search()
	for it.pos <= len(it.buf) {
		if it.p.pf != nil && it.cand < it.pos {
			c, ok := it.p.pf.Candidate(it.buf, it.pos)
			if !ok {
				break
			}
			it.cand = c
		}

		var loc []int
		if groups {
			loc = re.FindSubmatchIndex(it.buf[it.pos:])
		} else {
			loc = re.FindIndex(it.buf[it.pos:])
		}
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += it.pos
			}
		}
		if it.step(loc) {
			return loc
		}
	}
	it.done = true
	return nil
}

// advanceBatched replays the backend's all-matches enumeration, growing the
// batch whenever the matches delivered so far fill it.
func (it *Iterator) advanceBatched() []int {
	if it.batch == nil && it.p.rejects(it.buf, 0) {
		it.done = true
		return nil
	}
	if it.yielded >= len(it.batch) {
		if it.batch != nil && len(it.batch) < it.want {
			it.done = true
			return nil
		}
		it.want = max(2*it.want, minBatch)
		it.batch = it.p.prog.Search().FindAllSubmatchIndex(it.buf, it.want)
		if it.yielded >= len(it.batch) {
			it.done = true
			return nil
		}
	}
	loc := it.batch[it.yielded]
	it.yielded++
	it.pos = loc[1]
	if loc[0] == loc[1] {
		it.pos += it.width(loc[1])
	}
	it.prevEnd = loc[1]
	return loc
}

// step moves the cursor past loc and reports whether loc is accepted.
func (it *Iterator) step(loc []int) bool {
	accept := true
	if loc[1] == it.pos {
		if loc[0] == it.prevEnd {
			accept = false
		}
		it.pos += it.width(it.pos)
	} else {
		it.pos = loc[1]
	}
	it.prevEnd = loc[1]
	return accept
}

// width is the size of the UTF-8 sequence at off, or 1 past the end.
func (it *Iterator) width(off int) int {
	if off >= len(it.buf) {
		return 1
	}
	_, w := utf8.DecodeRune(it.buf[off:])
	return max(w, 1)
}

// All returns an iterator over the whole-match spans of p in buf.
//
// Example:
//
//	for s := range re.All(buf) {
//	    fmt.Printf("%q\n", s.Bytes(buf))
//	}
func (p *Pattern) All(buf []byte) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		it := p.Iter(buf)
		defer it.Close()
		for {
			s, ok := it.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// AllCaptures returns an iterator over every match of p in buf with all of
// its groups.
func (p *Pattern) AllCaptures(buf []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		if !p.OK() {
			return
		}
		it := p.Iter(buf)
		defer it.Close()
		for {
			m, ok := it.NextCaptures(1 + p.prog.NumGroups)
			if !ok || !yield(m) {
				return
			}
		}
	}
}

// Count returns the number of matches an Iterator over buf reports.
func (p *Pattern) Count(buf []byte) int {
	n := 0
	it := p.Iter(buf)
	defer it.Close()
	for it.advance(false) != nil {
		n++
	}
	return n
}
