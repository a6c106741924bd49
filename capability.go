package respan

import (
	"github.com/coregx/respan/engine"
	"golang.org/x/sys/cpu"
)

// HasUnicode reports whether Unicode character classes (\pL, \p{Greek}) are
// available. The syntax tables are always compiled in.
func HasUnicode() bool {
	return true
}

// Features describes what this build of the package supports.
type Features struct {
	// Unicode is HasUnicode().
	Unicode bool

	// Backends lists the automaton backends that may be named in Options.
	Backends []Backend

	// Vector extensions of the host CPU.
	AVX2  bool
	SSSE3 bool
	ASIMD bool
}

// Capabilities probes the build and the running CPU.
func Capabilities() Features {
	return Features{
		Unicode:  HasUnicode(),
		Backends: engine.Backends(),
		AVX2:     cpu.X86.HasAVX2,
		SSSE3:    cpu.X86.HasSSSE3,
		ASIMD:    cpu.ARM64.HasASIMD,
	}
}
