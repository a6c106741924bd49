package respan

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(p *Pattern, buf []byte) [][]int {
	var out [][]int
	for s := range p.All(buf) {
		out = append(out, []int{s.Start, s.End()})
	}
	return out
}

func TestIterScenario(t *testing.T) {
	p := MustCompile(`a*`)
	it := p.Iter([]byte("baa"))
	defer it.Close()

	want := []Span{{0, 0, true}, {1, 2, true}}
	for i, w := range want {
		s, ok := it.Next()
		if !ok {
			t.Fatalf("match %d: iterator exhausted early", i)
		}
		if s != w {
			t.Errorf("match %d = %+v, want %+v", i, s, w)
		}
	}
	if s, ok := it.Next(); ok {
		t.Errorf("extra match %+v", s)
	}
	if !it.Exhausted() {
		t.Error("Exhausted() = false after last match")
	}
	if _, ok := it.Next(); ok {
		t.Error("exhausted iterator yielded a match")
	}
}

// The enumeration must agree with regexp's FindAllIndex, including empty
// matches and patterns that look at bytes before the cursor.
func TestIterMatchesStdlib(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
	}{
		{`a*`, "baa"},
		{`a*`, "aaa"},
		{`a*`, ""},
		{``, "héllo"},
		{`x*`, "xax"},
		{`\d+`, "1 22 333"},
		{`cat`, "cat dog cat"},
		{`(cat|dog)s?`, "dogs, cats and a dog"},
		{`\bfoo`, "foo xfoo foo"},
		{`(?m)^\w+`, "ab\ncd\nef"},
		{`^`, "abc"},
		{`\B`, "abc"},
		{`$`, "a\nb"},
		{`(?m)$`, "a\nb\n"},
		{`\b`, "héllo wörld"},
		{`\b\w`, strings.Repeat("ab ", 40)},
		{`[^a]*`, "baaab"},
		{`é*`, "éaé"},
	}

	for _, tt := range tests {
		p := MustCompile(tt.pattern)
		buf := []byte(tt.input)
		want := regexp.MustCompile(tt.pattern).FindAllIndex(buf, -1)
		got := collect(p, buf)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q over %q mismatch (-regexp +iter):\n%s", tt.pattern, tt.input, diff)
		}
	}
}

func TestIterForwardProgress(t *testing.T) {
	patterns := []string{``, `a*`, `\b`, `(?m)^`, `x?`, `(a|)`}
	inputs := []string{"", "a", "aaa", "héllo", "a b\nc", strings.Repeat("ab", 50)}

	for _, pat := range patterns {
		p := MustCompile(pat)
		for _, in := range inputs {
			buf := []byte(in)
			it := p.Iter(buf)
			n, prevEnd := 0, -1
			for {
				s, ok := it.Next()
				if !ok {
					break
				}
				n++
				if n > len(buf)+1 {
					t.Fatalf("%q over %q: more than len+1 matches", pat, in)
				}
				if s.Start < prevEnd {
					t.Errorf("%q over %q: match %+v revisits bytes before %d", pat, in, s, prevEnd)
				}
				if !s.Valid(len(buf)) {
					t.Errorf("%q over %q: span %+v out of bounds", pat, in, s)
				}
				prevEnd = s.End()
			}
			if c := p.Count(buf); c != n {
				t.Errorf("%q over %q: Count = %d, iterator = %d", pat, in, c, n)
			}
		}
	}
}

func TestIterCursor(t *testing.T) {
	p := MustCompile(`a*`)
	it := p.Iter([]byte("baa"))
	if it.Cursor() != 0 || it.Exhausted() {
		t.Fatal("new iterator not at cursor 0")
	}

	it.Next() // [0,0) then step one byte
	if it.Cursor() != 1 {
		t.Errorf("Cursor() after empty match = %d, want 1", it.Cursor())
	}
	it.Next() // [1,3)
	if it.Cursor() != 3 {
		t.Errorf("Cursor() after [1,3) = %d, want 3", it.Cursor())
	}
	if it.Exhausted() {
		t.Error("reaching the buffer end exhausted the iterator immediately")
	}
	it.Next()
	if it.Cursor() != 3 || !it.Exhausted() {
		t.Errorf("Cursor() = %d, Exhausted() = %v at end", it.Cursor(), it.Exhausted())
	}
}

func TestIterEmptyMatchAtEnd(t *testing.T) {
	// The cursor reaching len(buf) does not exhaust the iterator: an empty
	// match may still occur there.
	got := collect(MustCompile(`a*`), []byte("b"))
	if diff := cmp.Diff([][]int{{0, 0}, {1, 1}}, got); diff != "" {
		t.Errorf("a* mismatch (-want +got):\n%s", diff)
	}

	// An empty match abutting the previous match is skipped.
	got = collect(MustCompile(`b*`), []byte("ab"))
	if diff := cmp.Diff([][]int{{0, 0}, {1, 2}}, got); diff != "" {
		t.Errorf("b* mismatch (-want +got):\n%s", diff)
	}
}

func TestIterCaptures(t *testing.T) {
	p := MustCompile(`(\w)(\d)?`)
	it := p.Iter([]byte("a1 b"))

	m, ok := it.NextCaptures(3)
	if !ok {
		t.Fatal("first NextCaptures = false")
	}
	if diff := cmp.Diff(Match{{0, 2, true}, {0, 1, true}, {1, 1, true}}, m); diff != "" {
		t.Errorf("first (-want +got):\n%s", diff)
	}

	m, ok = it.NextCaptures(2)
	if !ok {
		t.Fatal("second NextCaptures = false")
	}
	if diff := cmp.Diff(Match{{3, 1, true}, {3, 1, true}}, m); diff != "" {
		t.Errorf("second truncated (-want +got):\n%s", diff)
	}

	if _, ok := it.NextCaptures(3); ok {
		t.Error("third NextCaptures = true")
	}
}

func TestIterProbeAndNegative(t *testing.T) {
	p := MustCompile(`\d`)
	it := p.Iter([]byte("1 2"))

	if _, ok := it.NextCaptures(-1); ok {
		t.Error("negative capacity reported a match")
	}
	if it.Cursor() != 0 {
		t.Error("negative capacity advanced the iterator")
	}
	if m, ok := it.NextCaptures(0); !ok || m != nil {
		t.Errorf("probe = %v, %v", m, ok)
	}
	if s, ok := it.Next(); !ok || s.Start != 2 {
		t.Errorf("after probe Next() = %+v, %v; want start 2", s, ok)
	}
}

func TestIterInto(t *testing.T) {
	p := MustCompile(`(?m)^(\w+)=(\w*)$`)
	buf := []byte("a=1\nbad line\nb=\n")
	it := p.Iter(buf)

	dst := make([]Span, 3)
	var pairs []string
	for {
		n, ok := it.NextInto(dst)
		if !ok {
			break
		}
		if n != 3 {
			t.Fatalf("NextInto wrote %d spans, want 3", n)
		}
		pairs = append(pairs, string(dst[1].Bytes(buf))+":"+string(dst[2].Bytes(buf)))
	}
	if diff := cmp.Diff([]string{"a:1", "b:"}, pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestAllCaptures(t *testing.T) {
	p := MustCompile(`(\d+)-(\d+)`)
	var got []Match
	for m := range p.AllCaptures([]byte("1-2, 30-40")) {
		got = append(got, m)
	}
	want := []Match{
		{{0, 3, true}, {0, 1, true}, {2, 1, true}},
		{{5, 5, true}, {5, 2, true}, {8, 2, true}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AllCaptures mismatch (-want +got):\n%s", diff)
	}

	// Breaking out early stops the iteration.
	n := 0
	for range p.All([]byte("1-2 3-4 5-6")) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break visited %d matches", n)
	}
}

func TestIterRE2Backend(t *testing.T) {
	opts := DefaultOptions()
	opts.Backend = BackendRE2

	for _, pat := range []string{`a*`, `\bfoo`, `\d+`} {
		p, err := CompileWithOptions(pat, opts)
		if err != nil {
			t.Fatal(err)
		}
		buf := []byte("baa foo 12 xfoo 3")
		want := collect(MustCompile(pat), buf)
		if diff := cmp.Diff(want, collect(p, buf)); diff != "" {
			t.Errorf("%q: RE2 iteration mismatch (-std +re2):\n%s", pat, diff)
		}
	}
}

func TestIterClose(t *testing.T) {
	it := MustCompile(`a`).Iter([]byte("aaa"))
	it.Close()
	it.Close()
	if _, ok := it.Next(); ok || !it.Exhausted() {
		t.Error("closed iterator yielded a match")
	}

	var nilIter *Iterator
	if _, ok := nilIter.Next(); ok || !nilIter.Exhausted() || nilIter.Cursor() != 0 {
		t.Error("nil iterator not exhausted")
	}
	nilIter.Close()
}
