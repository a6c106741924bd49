package respan

import "fmt"

// A template is parsed into literal runs and group references.
type piece struct {
	lit   []byte
	group int // -1 for a literal run
}

type template struct {
	pieces []piece
	maxRef int
}

// parseTemplate parses src with \0..\9 as group references and \\ as a
// backslash. groups bounds the valid references; a negative value skips the
// bound check.
func parseTemplate(src []byte, groups int) (*template, error) {
	t := &template{maxRef: -1}
	start := 0
	var lit []byte
	for i := 0; i < len(src); i++ {
		if src[i] != '\\' {
			continue
		}
		lit = append(lit, src[start:i]...)
		if i+1 >= len(src) {
			return nil, &TemplateError{Template: string(src), Offset: i, Reason: "trailing backslash"}
		}
		c := src[i+1]
		switch {
		case c == '\\':
			lit = append(lit, '\\')
		case c >= '0' && c <= '9':
			g := int(c - '0')
			if groups >= 0 && g > groups {
				return nil, &TemplateError{
					Template: string(src),
					Offset:   i,
					Reason:   fmt.Sprintf("group %d exceeds the pattern's %d groups", g, groups),
				}
			}
			if len(lit) > 0 {
				t.pieces = append(t.pieces, piece{lit: lit, group: -1})
				lit = nil
			}
			t.pieces = append(t.pieces, piece{group: g})
			t.maxRef = max(t.maxRef, g)
		default:
			return nil, &TemplateError{
				Template: string(src),
				Offset:   i,
				Reason:   fmt.Sprintf("invalid escape \\%c", c),
			}
		}
		i++
		start = i + 1
	}
	lit = append(lit, src[start:]...)
	if len(lit) > 0 {
		t.pieces = append(t.pieces, piece{lit: lit, group: -1})
	}
	return t, nil
}

// expand appends the template instantiated with the match loc in buf.
// Groups that did not participate expand to nothing.
func (t *template) expand(dst, buf []byte, loc []int) []byte {
	for _, pc := range t.pieces {
		if pc.group < 0 {
			dst = append(dst, pc.lit...)
			continue
		}
		if 2*pc.group+1 >= len(loc) {
			continue
		}
		if s, e := loc[2*pc.group], loc[2*pc.group+1]; s >= 0 {
			dst = append(dst, buf[s:e]...)
		}
	}
	return dst
}

// MaxBackref returns the highest group referenced by tmpl, or -1 when it
// references none. Malformed escapes are ignored.
func MaxBackref(tmpl []byte) int {
	ref := -1
	for i := 0; i+1 < len(tmpl); i++ {
		if tmpl[i] != '\\' {
			continue
		}
		if c := tmpl[i+1]; c >= '0' && c <= '9' {
			ref = max(ref, int(c-'0'))
		}
		i++
	}
	return ref
}

// CheckTemplate reports whether tmpl is a well-formed rewrite template for p:
// only \0..\9 and \\ escapes, and no reference above NumGroups.
func (p *Pattern) CheckTemplate(tmpl []byte) error {
	if err := p.usable(); err != nil {
		return err
	}
	_, err := parseTemplate(tmpl, p.prog.NumGroups)
	return err
}

func (p *Pattern) compileTemplate(tmpl []byte) (*template, error) {
	if err := p.usable(); err != nil {
		return nil, err
	}
	return parseTemplate(tmpl, p.prog.NumGroups)
}

// ReplaceFirst returns a copy of buf with the leftmost match replaced by tmpl.
// In tmpl, \0 is the whole match, \1..\9 are groups and \\ is a backslash.
//
// matched is false, and out nil, when the pattern does not match. buf is
// never modified.
//
// Example:
//
//	re := respan.MustCompile(`(\w+)@(\w+)`)
//	out, _, _ := re.ReplaceFirst([]byte("bob@example"), []byte(`\2 at \1`))
//	// out == "example at bob"
func (p *Pattern) ReplaceFirst(buf, tmpl []byte) (out []byte, matched bool, err error) {
	out, n, err := p.replace(nil, buf, tmpl, 1)
	return out, n > 0, err
}

// ReplaceAll returns a copy of buf with every non-overlapping match replaced
// by tmpl, and the number of replacements. Matches are the ones an Iterator
// over buf reports, so count always equals the iterator's match count.
//
// A count of 0 means no match; out is nil in that case.
//
// Example:
//
//	re := respan.MustCompile(`cat`)
//	out, n, _ := re.ReplaceAll([]byte("cat dog cat"), []byte("X"))
//	// out == "X dog X", n == 2
func (p *Pattern) ReplaceAll(buf, tmpl []byte) (out []byte, count int, err error) {
	return p.replace(nil, buf, tmpl, -1)
}

// ReplaceFirstInto is ReplaceFirst writing into dst.
//
// It returns ErrNoMatch when the pattern does not match, and ErrShortBuffer
// when dst is too small; in the latter case n is the exact size required and
// the contents of dst are unspecified. Otherwise n bytes of dst hold the
// result.
//
// Example (probe, then fill):
//
//	n, err := re.ReplaceFirstInto(nil, buf, tmpl)
//	if errors.Is(err, respan.ErrShortBuffer) {
//	    dst := make([]byte, n)
//	    n, err = re.ReplaceFirstInto(dst, buf, tmpl)
//	}
func (p *Pattern) ReplaceFirstInto(dst, buf, tmpl []byte) (n int, err error) {
	n, _, err = p.replaceInto(dst, buf, tmpl, 1)
	return n, err
}

// ReplaceAllInto is ReplaceAll writing into dst, with the error conventions
// of ReplaceFirstInto. count is reported even when dst is too small.
func (p *Pattern) ReplaceAllInto(dst, buf, tmpl []byte) (n, count int, err error) {
	return p.replaceInto(dst, buf, tmpl, -1)
}

func (p *Pattern) replaceInto(dst, buf, tmpl []byte, limit int) (n, count int, err error) {
	out, count, err := p.replace(dst[:0:len(dst)], buf, tmpl, limit)
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, ErrNoMatch
	}
	if len(out) > len(dst) {
		return len(out), count, ErrShortBuffer
	}
	return len(out), count, nil
}

// replace appends the rewritten buffer to dst for up to limit matches
// (all when limit < 0). It returns nil output when nothing matched.
func (p *Pattern) replace(dst, buf, tmpl []byte, limit int) ([]byte, int, error) {
	t, err := p.compileTemplate(tmpl)
	if err != nil {
		return nil, 0, err
	}

	it := p.Iter(buf)
	defer it.Close()

	out := dst
	if out == nil {
		out = make([]byte, 0, len(buf))
	}
	last, count := 0, 0
	for limit < 0 || count < limit {
		loc := it.advance(t.maxRef > 0)
		if loc == nil {
			break
		}
		out = append(out, buf[last:loc[0]]...)
		out = t.expand(out, buf, loc)
		last = loc[1]
		count++
	}
	if count == 0 {
		return nil, 0, nil
	}
	out = append(out, buf[last:]...)
	return out, count, nil
}

// Extract returns tmpl instantiated with the leftmost match of p in buf,
// without the surrounding text.
//
// Example:
//
//	re := respan.MustCompile(`(\w+)@(\w+)`)
//	out, _, _ := re.Extract([]byte("mail bob@example now"), []byte(`\1`))
//	// out == "bob"
func (p *Pattern) Extract(buf, tmpl []byte) (out []byte, matched bool, err error) {
	t, err := p.compileTemplate(tmpl)
	if err != nil {
		return nil, false, err
	}
	it := p.Iter(buf)
	defer it.Close()
	loc := it.advance(t.maxRef > 0)
	if loc == nil {
		return nil, false, nil
	}
	return t.expand([]byte{}, buf, loc), true, nil
}
