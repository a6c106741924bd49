package respan

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { SetLogger(zerolog.Nop()) })

	MustCompile(`(cat|dog)s`)
	Compile("(")

	out := buf.String()
	for _, want := range []string{
		`"message":"respan: compiled"`,
		`"prefilter_literals":2`,
		`"message":"respan: invalid pattern"`,
		`"pattern":"("`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
