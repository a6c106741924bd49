package respan

// QuoteMeta returns s with every byte that could be a metacharacter escaped,
// so the result matches s literally.
//
// ASCII letters, digits and '_' are left alone, as are bytes >= 0x80 so
// UTF-8 sequences survive intact. NUL becomes \x00.
//
// Example:
//
//	respan.QuoteMeta("1.5-2.0?") // `1\.5\-2\.0\?`
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == 0:
			n += 4
		case needsEscape(c):
			n += 2
		default:
			n++
		}
	}
	if n == len(s) {
		return s
	}

	b := make([]byte, 0, n)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == 0:
			b = append(b, `\x00`...)
		case needsEscape(c):
			b = append(b, '\\', c)
		default:
			b = append(b, c)
		}
	}
	return string(b)
}

func needsEscape(c byte) bool {
	switch {
	case c >= 0x80:
		return false
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_':
		return false
	}
	return true
}
