// Package conv provides safe integer conversion helpers for the DFA and
// lex-table builders.
//
// DFA state indices and accept classes are tracked as plain int internally
// (for ease of slice indexing) but narrowed to uint32/int32 at the
// boundaries where the flattened LexTable stores them compactly. These
// helpers perform the bounds check before narrowing and panic on overflow,
// since an overflow here means a pattern vector produced more states or
// classes than the table format can address — a construction-invariant
// violation, not a recoverable value.
package conv

import "math"

// IntToUint32 safely converts a state or class index to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare via uint so the check is correct on 32-bit platforms where
	// int cannot represent math.MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("derivex/internal/conv: index out of uint32 range")
	}
	return uint32(n)
}

// IntToInt32 safely converts an accept-class index to int32.
// Panics if n < 0 or n > math.MaxInt32.
func IntToInt32(n int) int32 {
	if n < 0 || n > math.MaxInt32 {
		panic("derivex/internal/conv: index out of int32 range")
	}
	return int32(n)
}
