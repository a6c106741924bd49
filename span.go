package respan

import "github.com/coregx/respan/engine"

// Span is a byte range in the buffer a match ran against.
//
// The zero Span is a group that did not participate in the match. A group
// that participated but matched nothing has Matched set and Len == 0:
//
//	(foo)?bar on "bar":   group 1 = Span{}                          (absent)
//	(foo|)bar on "bar":   group 1 = Span{Start: 0, Len: 0, Matched: true} (empty)
type Span struct {
	Start   int
	Len     int
	Matched bool
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int {
	return s.Start + s.Len
}

// Bytes returns the spanned bytes of buf, or nil if the span did not
// participate or does not fit in buf. The result aliases buf and has its
// capacity clipped, so appending to it never writes into buf.
func (s Span) Bytes(buf []byte) []byte {
	if !s.Matched || s.Start < 0 || s.Len < 0 || s.End() > len(buf) {
		return nil
	}
	return buf[s.Start:s.End():s.End()]
}

// Valid reports whether the span is absent or fits inside a buffer of length n.
func (s Span) Valid(n int) bool {
	if !s.Matched {
		return s.Start == 0 && s.Len == 0
	}
	return s.Start >= 0 && s.Len >= 0 && s.End() <= n
}

// Match is the result of one match attempt: the whole match at index 0
// followed by capture groups 1..N, possibly truncated by capacity.
type Match []Span

// Group returns span i, or the zero Span when i is out of range.
func (m Match) Group(i int) Span {
	if i < 0 || i >= len(m) {
		return Span{}
	}
	return m[i]
}

// Anchor selects where a match may occur within the buffer.
type Anchor = engine.Anchor

const (
	// Unanchored finds the leftmost match anywhere in the buffer.
	Unanchored = engine.Unanchored

	// AnchorStart requires the match to begin at offset 0.
	AnchorStart = engine.AnchorStart

	// AnchorBoth requires the match to cover the whole buffer.
	AnchorBoth = engine.AnchorBoth
)

// fillSpans converts stdlib-style index pairs into spans, writing at most
// len(dst) of them. base is added to every participating offset. It returns
// the number of spans written.
func fillSpans(dst []Span, loc []int, base int) int {
	n := min(len(dst), len(loc)/2)
	for i := 0; i < n; i++ {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			dst[i] = Span{}
			continue
		}
		dst[i] = Span{Start: base + start, Len: end - start, Matched: true}
	}
	return n
}
