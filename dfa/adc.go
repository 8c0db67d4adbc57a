package dfa

import derivex "github.com/coregx/derivex"

// classes computes an approximate derivative class partition for r: a list
// of disjoint, non-empty ByteSets covering the full byte alphabet such that
// within any one block, every byte yields a structurally equal derivative
// of r. The partition is "approximate" in that it may be finer than the
// coarsest partition with this property, but it is never coarser — two
// bytes placed in different blocks are allowed to actually have equal
// derivatives; two bytes placed in the same block always do.
//
// classes must be recomputed for every state the DFA builder discovers, not
// just the start vector: a Cat's head alone (for example) can have a
// coarser partition than its tail does once the head is consumed, and a
// state reached deeper in the derivation needs its own ADC to avoid
// collapsing bytes that its particular vector actually distinguishes. What
// this partition computation does avoid is scanning all 256 byte values
// against the current state on every transition - every Set leaf appearing
// in any derivative of r is built purely from Set leaves already present in
// r (Deriv never introduces a new ByteSet constant, only set-algebra
// recombinations of existing ones via the smart constructors), so a handful
// of representative bytes per state suffice to find every distinct
// successor.
func classes(r derivex.RegEx) []derivex.ByteSet {
	switch r.Op() {
	case derivex.OpNone, derivex.OpEpsilon:
		return []derivex.ByteSet{derivex.UniverseByteSet()}
	case derivex.OpSet:
		s := r.ByteSet()
		comp := s.Complement()
		if comp.IsEmpty() {
			return []derivex.ByteSet{s}
		}
		return []derivex.ByteSet{s, comp}
	case derivex.OpCat:
		children := r.Sub()
		head := children[0]
		cls := classes(head)
		if head.IsNullable() {
			cls = refine(cls, classes(tailOf(children)))
		}
		return cls
	case derivex.OpStar, derivex.OpNot:
		return classes(r.Sub()[0])
	case derivex.OpOr, derivex.OpAnd:
		children := r.Sub()
		cls := classes(children[0])
		for _, c := range children[1:] {
			cls = refine(cls, classes(c))
		}
		return cls
	default:
		panic("dfa: unreachable Op in classes")
	}
}

// tailOf reconstructs the concatenation of children[1:], which are already
// the flattened, canonical components of a Cat node. Folding them back
// together with Then (rather than reaching into RegEx internals, which
// this package has no access to) reproduces the same canonical tail term.
func tailOf(children []derivex.RegEx) derivex.RegEx {
	tail := children[1]
	for _, c := range children[2:] {
		tail = tail.Then(c)
	}
	return tail
}

// refine cross-intersects two alphabet partitions, producing the coarsest
// partition that refines both: every block of the result is a subset of
// exactly one block from a and one block from b.
func refine(a, b []derivex.ByteSet) []derivex.ByteSet {
	out := make([]derivex.ByteSet, 0, len(a)+len(b))
	for _, x := range a {
		for _, y := range b {
			z := x.Intersection(y)
			if !z.IsEmpty() {
				out = append(out, z)
			}
		}
	}
	return out
}
