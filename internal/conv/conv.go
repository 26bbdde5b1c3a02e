// Package conv provides safe integer conversion helpers for the regex engine.
//
// These functions perform bounds checking before narrowing integer
// conversions to prevent silent overflow. They panic on overflow since this
// indicates a programming error (a program too large for the compiler's own
// invariants, not a user-facing condition).
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("pikere/internal/conv: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint32ToInt converts a uint32 to an int.
// Panics on platforms where int is 32-bit and the value doesn't fit.
func Uint32ToInt(n uint32) int {
	if uint64(n) > uint64(math.MaxInt) {
		panic("pikere/internal/conv: uint32 value out of int range")
	}
	return int(n)
}
