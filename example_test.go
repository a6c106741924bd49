package respan_test

import (
	"errors"
	"fmt"

	"github.com/coregx/respan"
)

// ExampleCompile demonstrates compiling and checking a pattern.
func ExampleCompile() {
	re, err := respan.Compile(`(\d+)-(\d+)`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.OK(), re.NumGroups())
	// Output: true 2
}

// ExampleCompile_invalid shows that syntax errors are reported on the pattern.
func ExampleCompile_invalid() {
	re, err := respan.Compile("(")
	fmt.Println(err)
	fmt.Println(re.OK(), re.NumGroups())
	fmt.Println(re.Diagnostic())
	// Output:
	// <nil>
	// false 0
	// error parsing regexp: missing closing ): `(`
}

// ExamplePattern_Match demonstrates capture spans.
func ExamplePattern_Match() {
	re := respan.MustCompile(`(\d+)-(\d+)`)
	m, ok := re.Match([]byte("12-34"), respan.AnchorBoth, 3)
	fmt.Println(ok)
	for _, s := range m {
		fmt.Println(s.Start, s.Len)
	}
	// Output:
	// true
	// 0 5
	// 0 2
	// 3 2
}

// ExamplePattern_Match_participation distinguishes absent and empty groups.
func ExamplePattern_Match_participation() {
	absent := respan.MustCompile(`(foo)?bar`)
	empty := respan.MustCompile(`(foo|)bar`)
	buf := []byte("bar")

	m1, _ := absent.Match(buf, respan.Unanchored, 2)
	m2, _ := empty.Match(buf, respan.Unanchored, 2)
	fmt.Printf("%+v\n", m1[1])
	fmt.Printf("%+v\n", m2[1])
	// Output:
	// {Start:0 Len:0 Matched:false}
	// {Start:0 Len:0 Matched:true}
}

// ExamplePattern_Iter demonstrates match enumeration with empty matches.
func ExamplePattern_Iter() {
	re := respan.MustCompile(`a*`)
	it := re.Iter([]byte("baa"))
	defer it.Close()

	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		fmt.Printf("[%d,%d)\n", s.Start, s.End())
	}
	// Output:
	// [0,0)
	// [1,3)
}

// ExamplePattern_All demonstrates range-over-func iteration.
func ExamplePattern_All() {
	re := respan.MustCompile(`\w+`)
	buf := []byte("one two three")
	for s := range re.All(buf) {
		fmt.Println(string(s.Bytes(buf)))
	}
	// Output:
	// one
	// two
	// three
}

// ExamplePattern_ReplaceAll demonstrates rewriting every match.
func ExamplePattern_ReplaceAll() {
	re := respan.MustCompile(`cat`)
	out, n, _ := re.ReplaceAll([]byte("cat dog cat"), []byte("X"))
	fmt.Println(string(out), n)
	// Output: X dog X 2
}

// ExamplePattern_ReplaceAllInto demonstrates the probe/fill convention.
func ExamplePattern_ReplaceAllInto() {
	re := respan.MustCompile(`(\w+)@(\w+)`)
	buf := []byte("bob@example")
	tmpl := []byte(`\2 <\1>`)

	n, _, err := re.ReplaceAllInto(nil, buf, tmpl)
	if errors.Is(err, respan.ErrShortBuffer) {
		dst := make([]byte, n)
		n, _, _ = re.ReplaceAllInto(dst, buf, tmpl)
		fmt.Println(string(dst[:n]))
	}
	// Output: example <bob>
}

// ExampleCompileWithOptions demonstrates non-default options.
func ExampleCompileWithOptions() {
	opts := respan.DefaultOptions()
	opts.CaseSensitive = false
	opts.LongestMatch = true

	re, _ := respan.CompileWithOptions(`a|ab`, opts)
	m, _ := re.Match([]byte("AB"), respan.Unanchored, 1)
	fmt.Println(m[0].Len)
	// Output: 2
}

// ExampleQuoteMeta demonstrates escaping a literal.
func ExampleQuoteMeta() {
	fmt.Println(respan.QuoteMeta("1.5-2.0?"))
	// Output: 1\.5\-2\.0\?
}
