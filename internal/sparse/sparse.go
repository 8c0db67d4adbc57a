// Package sparse provides a sparse set: O(1) insert, contains, remove, and
// clear over a bounded domain of uint32 indices, with O(n) iteration in
// insertion order. It backs the Hopcroft minimizer's record of which block
// IDs are currently on its refinement worklist.
package sparse

// Set is a set of uint32 values in [0, capacity), implemented as a sparse
// array (value -> dense index, for O(1) membership testing) paired with a
// dense array (the actual values, for O(1) iteration and O(1) removal via
// swap-with-last).
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New returns an empty Set over the domain [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Len returns the number of elements currently in the set.
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Contains reports whether value is a member of the set.
func (s *Set) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Insert adds value to the set and reports whether it was newly inserted
// (false if value was already present). Panics if value is outside the
// set's declared capacity.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Remove removes value from the set and reports whether it was present.
func (s *Set) Remove(value uint32) bool {
	if !s.Contains(value) {
		return false
	}
	idx := s.sparse[value]
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[idx] = moved
	s.sparse[moved] = idx
	s.dense = s.dense[:last]
	return true
}

// Clear empties the set in O(1) time.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the set's members in insertion order (modulo removals,
// which may reorder the tail via swap-with-last). The returned slice
// aliases the set's internal storage and is only valid until the next
// mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
