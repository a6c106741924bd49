package respan

import "testing"

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc_123", "abc_123"},
		{"1.5-2.0?", `1\.5\-2\.0\?`},
		{"a b", `a\ b`},
		{"(x)[y]{z}", `\(x\)\[y\]\{z\}`},
		{"\x00", `\x00`},
		{"héllo", "héllo"},
		{`\`, `\\`},
	}

	for _, tt := range tests {
		got := QuoteMeta(tt.in)
		if got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if p := MustCompile(got); !p.FullMatch([]byte(tt.in)) {
			t.Errorf("QuoteMeta(%q) = %q does not match its input", tt.in, got)
		}
	}
}

func TestCapabilities(t *testing.T) {
	if !HasUnicode() {
		t.Error("HasUnicode() = false")
	}
	c := Capabilities()
	if !c.Unicode || len(c.Backends) != 2 {
		t.Errorf("Capabilities() = %+v", c)
	}
	if !MustCompile(`\p{Greek}+`).FullMatch([]byte("αβγ")) {
		t.Error(`\p{Greek} did not match Greek text`)
	}
}
