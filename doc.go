// Package respan matches compiled patterns against byte buffers and reports
// results as byte spans into the caller's buffer.
//
// The package is a facade over an RE2-class automaton (Go's regexp package by
// default, or RE2 itself through WebAssembly). It adds what the engines leave
// to the caller:
//   - compile diagnostics on a handle that always exists, even for bad syntax
//   - byte spans that distinguish a group that did not participate from a
//     group that matched the empty string
//   - caller-bounded capture output (capacity truncation, probe/fill buffers)
//   - a lazy, resumable iterator over successive non-overlapping matches
//   - RE2-style rewrite templates (\0 .. \9)
//
// Basic usage:
//
//	re, err := respan.Compile(`(\d+)-(\d+)`)
//	if err != nil {
//	    log.Fatal(err) // resource exhaustion only
//	}
//	if !re.OK() {
//	    log.Fatal(re.Diagnostic())
//	}
//	m, ok := re.Match([]byte("12-34"), respan.AnchorBoth, 3)
//	// ok == true, m == [{0 5} {0 2} {3 2}]
//
// Iteration:
//
//	it := re.Iter(buf)
//	defer it.Close()
//	for {
//	    span, ok := it.Next()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(string(span.Bytes(buf)))
//	}
//
// Buffers are borrowed: nothing in this package copies or mutates them, and
// spans stay valid only as long as the caller keeps the buffer unchanged.
//
// A Pattern is safe for concurrent use. An Iterator is not.
package respan
