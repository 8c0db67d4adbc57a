package derivex

import "math/bits"

// ByteSet is a compact, immutable set of 8-bit values, represented as a
// 256-bit bitmap (four uint64 words). Every operation is total, pure, and
// O(1) in the number of words.
//
// ByteSet is the leaf alphabet type of the RegEx algebra: a Set node holds
// exactly one ByteSet, and the approximate-derivative-class computation
// (dfa.adc) partitions the 256-byte alphabet into ByteSet blocks.
type ByteSet struct {
	words [4]uint64
}

// EmptyByteSet returns the set {}.
func EmptyByteSet() ByteSet {
	return ByteSet{}
}

// UniverseByteSet returns the set {0, ..., 255}.
func UniverseByteSet() ByteSet {
	return ByteSet{words: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}
}

// PointByteSet returns the set {value}.
func PointByteSet(value byte) ByteSet {
	var s ByteSet
	s.words[value/64] = 1 << (value % 64)
	return s
}

// RangeByteSet returns the set {from, ..., to} (inclusive on both ends).
//
// If from > to the result is the empty set. This is a deliberate choice for
// an otherwise-silent corner of the source algebra (see DESIGN.md); callers
// that need a non-empty range must ensure from <= to themselves.
func RangeByteSet(from, to byte) ByteSet {
	if from > to {
		return ByteSet{}
	}

	var s ByteSet
	loWord, loBit := from/64, from%64
	hiWord, hiBit := to/64, to%64

	if loWord == hiWord {
		s.words[loWord] = rangeMask(loBit, hiBit)
		return s
	}

	s.words[loWord] = rangeMask(loBit, 63)
	for w := loWord + 1; w < hiWord; w++ {
		s.words[w] = ^uint64(0)
	}
	s.words[hiWord] = rangeMask(0, hiBit)
	return s
}

// rangeMask returns a uint64 with bits [lo, hi] (inclusive) set.
func rangeMask(lo, hi byte) uint64 {
	if lo > hi {
		return 0
	}
	full := ^uint64(0)
	low := full << lo
	if hi == 63 {
		return low
	}
	high := full >> (63 - hi)
	return low & high
}

// IsEmpty reports whether the set has no members.
func (s ByteSet) IsEmpty() bool {
	return s.words[0] == 0 && s.words[1] == 0 && s.words[2] == 0 && s.words[3] == 0
}

// IsUniverse reports whether the set contains every byte value.
func (s ByteSet) IsUniverse() bool {
	const all = ^uint64(0)
	return s.words[0] == all && s.words[1] == all && s.words[2] == all && s.words[3] == all
}

// Contains reports whether value is a member of the set.
func (s ByteSet) Contains(value byte) bool {
	return s.words[value/64]&(1<<(value%64)) != 0
}

// Complement returns the set of bytes not in s.
func (s ByteSet) Complement() ByteSet {
	return ByteSet{words: [4]uint64{^s.words[0], ^s.words[1], ^s.words[2], ^s.words[3]}}
}

// Intersection returns the set of bytes in both s and other.
func (s ByteSet) Intersection(other ByteSet) ByteSet {
	var r ByteSet
	for i := range s.words {
		r.words[i] = s.words[i] & other.words[i]
	}
	return r
}

// Union returns the set of bytes in either s or other.
func (s ByteSet) Union(other ByteSet) ByteSet {
	var r ByteSet
	for i := range s.words {
		r.words[i] = s.words[i] | other.words[i]
	}
	return r
}

// Equal reports whether s and other have identical membership.
func (s ByteSet) Equal(other ByteSet) bool {
	return s.words == other.words
}

// Smallest returns the smallest member of s and true, or (0, false) if s is
// empty.
func (s ByteSet) Smallest() (byte, bool) {
	for i, w := range s.words {
		if w != 0 {
			return byte(i*64 + bits.TrailingZeros64(w)), true
		}
	}
	return 0, false
}

// Bytes returns an ascending iterator over the members of s.
//
// Usage:
//
//	for b := range set.Bytes() {
//	    ...
//	}
func (s ByteSet) Bytes() func(yield func(byte) bool) {
	return func(yield func(byte) bool) {
		for i, w := range s.words {
			for w != 0 {
				b := byte(i*64 + bits.TrailingZeros64(w))
				if !yield(b) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Compare returns -1, 0, or 1 as s is less than, equal to, or greater than
// other, under the lexicographic order over the bitmap words (most
// significant word — covering bytes 0-63 — first). This is the total order
// RegEx's Or/And canonicalization relies on to sort and dedup Set children.
func (s ByteSet) Compare(other ByteSet) int {
	for i := range s.words {
		if s.words[i] != other.words[i] {
			if s.words[i] < other.words[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Count returns the number of members of s.
func (s ByteSet) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}
