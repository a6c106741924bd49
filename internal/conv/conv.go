// Package conv provides checked integer conversions for the handle boundary.
//
// Offsets cross the boundary as uint64 and are used as int inside the
// package. The conversions panic on overflow since this indicates a
// programming error (a negative length or an offset beyond addressable
// memory).
package conv

import "math"

// IntToUint64 safely converts an int to uint64.
// Panics if n < 0.
//
//go:inline
func IntToUint64(n int) uint64 {
	if n < 0 {
		panic("integer overflow: negative int converted to uint64")
	}
	return uint64(n)
}

// Uint64ToInt safely converts a uint64 to int.
// Panics if n > math.MaxInt.
//
//go:inline
func Uint64ToInt(n uint64) int {
	if n > math.MaxInt {
		panic("integer overflow: uint64 value out of int range")
	}
	return int(n)
}
