// Package handle exposes compiled patterns and iterators behind integer
// handles, for embedding behind a foreign-function boundary.
//
// Every call validates its handle and reports failure as false / zero rather
// than panicking. Spans are RawSpan values with Start == NoParticipation for
// groups that did not participate. Output buffers are caller-supplied; the
// replace functions always report the exact size they need so callers can
// probe with an empty buffer and then fill.
//
// Handles are process-global and safe to create, use and delete from any
// goroutine. An iterator handle must only be advanced by one goroutine at a
// time.
package handle

import (
	"errors"
	"math"
	"sync"

	"github.com/coregx/respan"
	"github.com/coregx/respan/internal/conv"
)

// Handle identifies a compiled pattern. The zero Handle is never valid.
type Handle uint64

// IterHandle identifies a match iterator. The zero IterHandle is never valid.
type IterHandle uint64

// NoParticipation is the RawSpan.Start of a group that did not participate.
const NoParticipation = math.MaxUint64

// ExhaustedDiagnostic is reported when a pattern could not be constructed
// within resource limits.
const ExhaustedDiagnostic = "respan: pattern exceeds resource limits"

// RawSpan is a byte range at the boundary.
type RawSpan struct {
	Start uint64
	Len   uint64
}

// Span converts r to a respan.Span. It reports false when r does not fit
// the int offsets of a Go buffer.
func (r RawSpan) Span() (respan.Span, bool) {
	if r.Start == NoParticipation {
		return respan.Span{}, true
	}
	if r.Start > math.MaxInt || r.Len > math.MaxInt-r.Start {
		return respan.Span{}, false
	}
	return respan.Span{Start: conv.Uint64ToInt(r.Start), Len: conv.Uint64ToInt(r.Len), Matched: true}, true
}

func rawSpan(s respan.Span) RawSpan {
	if !s.Matched {
		return RawSpan{Start: NoParticipation}
	}
	return RawSpan{Start: conv.IntToUint64(s.Start), Len: conv.IntToUint64(s.Len)}
}

type registry struct {
	mu       sync.Mutex
	next     uint64
	patterns map[Handle]*respan.Pattern
	iters    map[IterHandle]*respan.Iterator
}

var reg = &registry{
	patterns: make(map[Handle]*respan.Pattern),
	iters:    make(map[IterHandle]*respan.Iterator),
}

func (r *registry) id() uint64 {
	r.next++
	return r.next
}

func (r *registry) pattern(h Handle) *respan.Pattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.patterns[h]
}

func (r *registry) iter(h IterHandle) *respan.Iterator {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.iters[h]
}

// New compiles pattern with default options.
//
// It returns a handle even for invalid syntax; check OK or the returned
// diagnostic. On resource exhaustion it returns the zero Handle and
// ExhaustedDiagnostic.
func New(pattern []byte) (Handle, string) {
	return NewWithOptions(pattern, respan.DefaultOptions())
}

// NewWithOptions compiles pattern with opts. See New.
//
// Start from respan.DefaultOptions: the zero respan.Options has
// CaseSensitive == false and compiles case-insensitively, unlike New.
func NewWithOptions(pattern []byte, opts respan.Options) (Handle, string) {
	p, err := respan.CompileWithOptions(string(pattern), opts)
	if err != nil {
		respan.Logger().Debug().Err(err).Msg("handle: construction failed")
		if errors.Is(err, respan.ErrResourceExhausted) {
			return 0, ExhaustedDiagnostic
		}
		return 0, err.Error()
	}

	reg.mu.Lock()
	h := Handle(reg.id())
	reg.patterns[h] = p
	reg.mu.Unlock()

	respan.Logger().Trace().Uint64("handle", uint64(h)).Bool("ok", p.OK()).Msg("handle: pattern created")
	return h, p.Diagnostic()
}

// Delete releases h. Iterators created from h report no further matches.
// Deleting an unknown handle is a no-op.
func Delete(h Handle) {
	reg.mu.Lock()
	p, ok := reg.patterns[h]
	delete(reg.patterns, h)
	reg.mu.Unlock()

	if ok {
		p.Close()
		respan.Logger().Trace().Uint64("handle", uint64(h)).Msg("handle: pattern deleted")
	}
}

// OK reports whether h is a live pattern that compiled.
func OK(h Handle) bool {
	return reg.pattern(h).OK()
}

// Error returns the compile diagnostic of h, "" when it compiled.
// The zero Handle reports ExhaustedDiagnostic.
func Error(h Handle) string {
	if h == 0 {
		return ExhaustedDiagnostic
	}
	return reg.pattern(h).Diagnostic()
}

// GroupCount returns the number of capture groups of h, 0 when h is not OK.
func GroupCount(h Handle) int {
	return reg.pattern(h).NumGroups()
}

// FullMatch reports whether all of buf matches h.
func FullMatch(h Handle, buf []byte) bool {
	return reg.pattern(h).FullMatch(buf)
}

// PartialMatch reports whether h matches anywhere in buf.
func PartialMatch(h Handle, buf []byte) bool {
	return reg.pattern(h).PartialMatch(buf)
}

// PartialMatchCaptures matches h anywhere in buf and writes up to len(out)
// spans. An empty out reports false.
func PartialMatchCaptures(h Handle, buf []byte, out []RawSpan) bool {
	return matchCaptures(h, buf, out, respan.Unanchored)
}

// FullMatchCaptures is PartialMatchCaptures for a match covering all of buf.
func FullMatchCaptures(h Handle, buf []byte, out []RawSpan) bool {
	return matchCaptures(h, buf, out, respan.AnchorBoth)
}

func matchCaptures(h Handle, buf []byte, out []RawSpan, anchor respan.Anchor) bool {
	if len(out) == 0 {
		return false
	}
	m, ok := reg.pattern(h).Match(buf, anchor, len(out))
	if !ok {
		return false
	}
	for i, s := range m {
		out[i] = rawSpan(s)
	}
	return true
}

// ReplaceOne rewrites the first match of h in buf with tmpl into out.
//
// written is the size of the full result whenever h matched, even when it
// exceeds len(out); ok is true only when the result fit. No match, an
// invalid template or an invalid handle report 0, false.
func ReplaceOne(h Handle, buf, tmpl, out []byte) (written int, ok bool) {
	n, err := reg.pattern(h).ReplaceFirstInto(out, buf, tmpl)
	return replaceResult(h, n, err)
}

// ReplaceAll rewrites every match of h in buf with tmpl into out, with the
// conventions of ReplaceOne. count is the number of replacements.
func ReplaceAll(h Handle, buf, tmpl, out []byte) (written, count int, ok bool) {
	n, count, err := reg.pattern(h).ReplaceAllInto(out, buf, tmpl)
	written, ok = replaceResult(h, n, err)
	return written, count, ok
}

func replaceResult(h Handle, n int, err error) (int, bool) {
	switch {
	case err == nil:
		return n, true
	case errors.Is(err, respan.ErrShortBuffer):
		return n, false
	case errors.Is(err, respan.ErrNoMatch):
		return 0, false
	}
	respan.Logger().Debug().Uint64("handle", uint64(h)).Err(err).Msg("handle: replace failed")
	return 0, false
}

// IterNew creates an iterator over buf. buf is borrowed and must not be
// modified until the iterator is deleted. It returns the zero IterHandle
// when h is unknown.
func IterNew(h Handle, buf []byte) IterHandle {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	p, ok := reg.patterns[h]
	if !ok {
		return 0
	}
	ih := IterHandle(reg.id())
	reg.iters[ih] = p.Iter(buf)
	respan.Logger().Trace().Uint64("handle", uint64(h)).Uint64("iter", uint64(ih)).Msg("handle: iterator created")
	return ih
}

// IterNext advances ih and returns the whole-match span.
func IterNext(ih IterHandle) (RawSpan, bool) {
	s, ok := reg.iter(ih).Next()
	if !ok {
		return RawSpan{}, false
	}
	return rawSpan(s), true
}

// IterNextCaptures advances ih and writes up to len(out) spans, returning
// how many were written. An empty out advances without writing.
func IterNextCaptures(ih IterHandle, out []RawSpan) (int, bool) {
	m, ok := reg.iter(ih).NextCaptures(len(out))
	if !ok {
		return 0, false
	}
	for i, s := range m {
		out[i] = rawSpan(s)
	}
	return len(m), true
}

// IterDelete releases ih. Deleting an unknown handle is a no-op.
func IterDelete(ih IterHandle) {
	reg.mu.Lock()
	it, ok := reg.iters[ih]
	delete(reg.iters, ih)
	reg.mu.Unlock()

	if ok {
		it.Close()
		respan.Logger().Trace().Uint64("iter", uint64(ih)).Msg("handle: iterator deleted")
	}
}

// HasUnicode reports whether Unicode classes are available.
func HasUnicode() bool {
	return respan.HasUnicode()
}
