package conv

import (
	"math"
	"testing"
)

func TestIntToUint64(t *testing.T) {
	for _, n := range []int{0, 1, 1 << 20, math.MaxInt} {
		if got := IntToUint64(n); got != uint64(n) {
			t.Errorf("IntToUint64(%d) = %d", n, got)
		}
	}
}

func TestUint64ToInt(t *testing.T) {
	for _, n := range []uint64{0, 1, 1 << 20, math.MaxInt} {
		if got := Uint64ToInt(n); uint64(got) != n {
			t.Errorf("Uint64ToInt(%d) = %d", n, got)
		}
	}
}

func TestOverflowPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"IntToUint64(-1)", func() { IntToUint64(-1) }},
		{"Uint64ToInt(MaxUint64)", func() { Uint64ToInt(math.MaxUint64) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}
