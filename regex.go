// Package derivex implements Brzozowski-derivative regular expressions over
// a byte alphabet, deterministic-finite-automaton construction via
// approximate derivative classes, Hopcroft minimization, and a maximal-munch
// lexical scanner driven by the minimized transition table.
//
// The algebra supports intersection (And) and complement (Not) in addition
// to the usual concatenation (Then), union (Or), and Kleene star (Star);
// this is what lets patterns like "digit AND NOT zero" be expressed directly
// as set operations rather than worked around with backreferences or
// negative lookahead, neither of which this package implements.
//
// Basic usage:
//
//	digit := derivex.Set(derivex.RangeByteSet('0', '9'))
//	zero := derivex.Set(derivex.PointByteSet('0'))
//	nonzero := digit.And(zero.Not())
//	nonzero.IsFullMatch([]byte("7")) // true
//	nonzero.IsFullMatch([]byte("0")) // false
//
// RegEx values are built exclusively through the smart constructors below
// (Then, Star, Or, And, Not, Set, ...), which maintain the canonical form
// documented on Op's variants. There is no exported way to construct an
// ill-formed RegEx.
package derivex

import "strings"

// Op identifies the outermost operator of a RegEx, in the sense of
// regexp/syntax.Op: it is what callers switch on to inspect a RegEx's shape.
type Op int

const (
	// OpNone denotes the empty language, recognizing no strings.
	OpNone Op = iota
	// OpEpsilon denotes the language containing only the empty string.
	OpEpsilon
	// OpSet denotes a single byte drawn from a non-empty ByteSet.
	OpSet
	// OpCat denotes concatenation of 2 or more sub-expressions.
	OpCat
	// OpStar denotes zero-or-more repetitions of its single sub-expression.
	OpStar
	// OpOr denotes the union of 2 or more sub-expressions.
	OpOr
	// OpAnd denotes the intersection of 2 or more sub-expressions.
	OpAnd
	// OpNot denotes the complement of its single sub-expression.
	OpNot
)

// RegEx is an immutable, structurally-shared regular expression over bytes.
// The zero value is not a valid RegEx; use None() for the empty language.
//
// Equality of two RegEx values constructed exclusively through the smart
// constructors in this package stands in for language equivalence closely
// enough for the DFA builder to terminate; it is NOT true
// language equivalence in general (e.g. (a|b) and (b|a) both canonicalize
// to the same term, but two differently-built regexes that happen to
// recognize the same language are not guaranteed to compare Equal unless
// they reduce to the same canonical term).
type RegEx struct {
	op       Op
	set      ByteSet
	children []RegEx
}

// None returns the RegEx recognizing no strings at all (the empty language
// ∅, not even containing the empty string).
func None() RegEx {
	return RegEx{op: OpNone}
}

// Empty returns the RegEx recognizing only the empty string ε.
func Empty() RegEx {
	return RegEx{op: OpEpsilon}
}

// Set returns the RegEx recognizing any single byte in s. If s is empty,
// this is None() — Set never constructs an Op==OpSet node over an empty
// ByteSet (the canonical-form invariant for Set).
func Set(s ByteSet) RegEx {
	if s.IsEmpty() {
		return None()
	}
	return RegEx{op: OpSet, set: s}
}

// Op returns r's outermost operator.
func (r RegEx) Op() Op {
	return r.op
}

// ByteSet returns the ByteSet held by an OpSet node. It is meaningless
// (and returns the empty set) for any other Op.
func (r RegEx) ByteSet() ByteSet {
	return r.set
}

// Sub returns r's sub-expressions: the flattened child list for
// OpCat/OpOr/OpAnd, a single-element slice for OpStar/OpNot, and nil
// otherwise. This mirrors regexp/syntax.Regexp.Sub.
func (r RegEx) Sub() []RegEx {
	return r.children
}

// childrenOf returns r's children if r's operator is op, or the
// single-element slice {r} otherwise. Used to flatten adjacent
// Cat/Or/And nodes before re-folding them.
func childrenOf(r RegEx, op Op) []RegEx {
	if r.op == op {
		return r.children
	}
	return []RegEx{r}
}

// Then returns the concatenation of r and other.
func (r RegEx) Then(other RegEx) RegEx {
	switch {
	case other.op == OpEpsilon:
		return r
	case r.op == OpEpsilon:
		return other
	case other.op == OpNone, r.op == OpNone:
		return None()
	default:
		children := make([]RegEx, 0, len(childrenOf(r, OpCat))+len(childrenOf(other, OpCat)))
		children = append(children, childrenOf(r, OpCat)...)
		children = append(children, childrenOf(other, OpCat)...)
		return RegEx{op: OpCat, children: children}
	}
}

// Star returns zero-or-more repetitions of r.
func (r RegEx) Star() RegEx {
	switch r.op {
	case OpNone, OpEpsilon:
		return Empty()
	case OpStar:
		return r
	default:
		return RegEx{op: OpStar, children: []RegEx{r}}
	}
}

// Or returns the union of r and other.
func (r RegEx) Or(other RegEx) RegEx {
	switch {
	case other.op == OpNone:
		return r
	case r.op == OpNone:
		return other
	case r.op == OpSet && other.op == OpSet:
		return Set(r.set.Union(other.set))
	default:
		merged := mergeSorted(childrenOf(r, OpOr), childrenOf(other, OpOr))
		result := orMergeSets(merged)
		switch len(result) {
		case 0:
			return None()
		case 1:
			return result[0]
		default:
			return RegEx{op: OpOr, children: result}
		}
	}
}

// And returns the intersection of r and other.
func (r RegEx) And(other RegEx) RegEx {
	switch {
	case other.op == OpNone, r.op == OpNone:
		return None()
	case other.op == OpEpsilon:
		if r.IsNullable() {
			return Empty()
		}
		return None()
	case r.op == OpEpsilon:
		if other.IsNullable() {
			return Empty()
		}
		return None()
	case r.op == OpSet && other.op == OpSet:
		return Set(r.set.Intersection(other.set))
	default:
		merged := mergeSorted(childrenOf(r, OpAnd), childrenOf(other, OpAnd))
		result, becameNone := andMergeSets(merged)
		if becameNone {
			return None()
		}
		switch len(result) {
		case 0:
			return None()
		case 1:
			return result[0]
		default:
			return RegEx{op: OpAnd, children: result}
		}
	}
}

// Not returns the complement of r (every string not in L(r)).
func (r RegEx) Not() RegEx {
	switch r.op {
	case OpNone:
		return Set(UniverseByteSet())
	case OpSet:
		return Set(r.set.Complement())
	case OpNot:
		return r.children[0]
	default:
		return RegEx{op: OpNot, children: []RegEx{r}}
	}
}

// Opt returns r made optional: Or(r, Empty()).
func (r RegEx) Opt() RegEx {
	return r.Or(Empty())
}

// Plus returns one-or-more repetitions of r: Then(r, Star(r)).
func (r RegEx) Plus() RegEx {
	return r.Then(r.Star())
}

// Diff returns the strings in L(r) that are not in L(other): And(r, Not(other)).
func (r RegEx) Diff(other RegEx) RegEx {
	return r.And(other.Not())
}

// IsNullable reports whether r's language contains the empty string.
func (r RegEx) IsNullable() bool {
	switch r.op {
	case OpNone, OpSet:
		return false
	case OpEpsilon, OpStar:
		return true
	case OpCat, OpAnd:
		for _, c := range r.children {
			if !c.IsNullable() {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range r.children {
			if c.IsNullable() {
				return true
			}
		}
		return false
	case OpNot:
		return !r.children[0].IsNullable()
	default:
		panic("derivex: unreachable Op in IsNullable")
	}
}

// Deriv returns the Brzozowski derivative of r with respect to byte a: the
// canonical RegEx recognizing { w | a·w ∈ L(r) }.
func (r RegEx) Deriv(a byte) RegEx {
	switch r.op {
	case OpNone, OpEpsilon:
		return None()
	case OpSet:
		if r.set.Contains(a) {
			return Empty()
		}
		return None()
	case OpCat:
		return derivCat(r.children, a)
	case OpStar:
		return r.children[0].Deriv(a).Then(r)
	case OpOr:
		return derivFold(r.children, a, RegEx.Or)
	case OpAnd:
		return derivFold(r.children, a, RegEx.And)
	case OpNot:
		return r.children[0].Deriv(a).Not()
	default:
		panic("derivex: unreachable Op in Deriv")
	}
}

func derivCat(children []RegEx, a byte) RegEx {
	head := children[0]
	var tail RegEx
	if len(children) == 2 {
		tail = children[1]
	} else {
		tail = RegEx{op: OpCat, children: children[1:]}
	}

	result := head.Deriv(a).Then(tail)
	if head.IsNullable() {
		result = result.Or(tail.Deriv(a))
	}
	return result
}

func derivFold(children []RegEx, a byte, combine func(RegEx, RegEx) RegEx) RegEx {
	result := children[0].Deriv(a)
	for _, c := range children[1:] {
		result = combine(result, c.Deriv(a))
	}
	return result
}

// IsFullMatch reports whether data, taken as a whole, is in L(r): it folds
// Deriv over every byte of data and checks IsNullable on what remains.
func (r RegEx) IsFullMatch(data []byte) bool {
	cur := r
	for _, b := range data {
		cur = cur.Deriv(b)
		if cur.op == OpNone {
			return false
		}
	}
	return cur.IsNullable()
}

// Literal reports whether r recognizes exactly one fixed byte string, and
// if so returns it. A RegEx is literal if it is Epsilon (the empty
// string), a single-byte Set(point), or a Cat chain of single-byte Sets.
// This is used by the prefilter package to detect when a pattern vector is
// amenable to Aho-Corasick acceleration.
func (r RegEx) Literal() ([]byte, bool) {
	switch r.op {
	case OpEpsilon:
		return nil, true
	case OpSet:
		b, ok := r.set.Smallest()
		if !ok || r.set.Count() != 1 {
			return nil, false
		}
		return []byte{b}, true
	case OpCat:
		out := make([]byte, 0, len(r.children))
		for _, c := range r.children {
			b, ok := c.Literal()
			if !ok || len(b) != 1 {
				return nil, false
			}
			out = append(out, b[0])
		}
		return out, true
	default:
		return nil, false
	}
}

// Compare returns -1, 0, or 1 as r sorts before, the same as, or after
// other, under the canonical total order: outermost Op first (in the
// declaration order above), then type-specific comparison of ByteSet or
// children. This is the order Or/And canonicalization uses to sort and
// deduplicate their children.
func (r RegEx) Compare(other RegEx) int {
	if r.op != other.op {
		if r.op < other.op {
			return -1
		}
		return 1
	}
	switch r.op {
	case OpNone, OpEpsilon:
		return 0
	case OpSet:
		return r.set.Compare(other.set)
	case OpCat, OpOr, OpAnd:
		return compareChildren(r.children, other.children)
	case OpStar, OpNot:
		return r.children[0].Compare(other.children[0])
	default:
		panic("derivex: unreachable Op in Compare")
	}
}

// Equal reports whether r and other are structurally identical.
func (r RegEx) Equal(other RegEx) bool {
	return r.Compare(other) == 0
}

func compareChildren(a, b []RegEx) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// mergeSorted merges two already-canonically-sorted child sequences into
// one sorted sequence, keeping duplicates (they are collapsed later by
// orMergeSets/andMergeSets). Both a and b are sorted by induction: they are
// either the children of an already-canonical Or/And node, or a
// single-element slice.
func mergeSorted(a, b []RegEx) []RegEx {
	out := make([]RegEx, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Compare(b[j]) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// orMergeSets implements the merged_sets step for Or: it folds every Set
// child in sorted into one via ByteSet union, re-inserts the result at its
// sorted position, and deduplicates adjacent-equal children.
func orMergeSets(sorted []RegEx) []RegEx {
	rest, acc, hasSet := extractSets(sorted, ByteSet.Union)
	if hasSet {
		rest = insertSorted(rest, Set(acc))
	}
	return dedupSorted(rest)
}

// andMergeSets is orMergeSets's And counterpart: it folds Set children via
// ByteSet intersection. If the intersection becomes empty, the whole And
// is unsatisfiable regardless of its other operands, so the second return
// value is true and the caller must produce None() directly — an empty Set
// child can never legally appear inside an And node.
func andMergeSets(sorted []RegEx) (result []RegEx, becameNone bool) {
	rest, acc, hasSet := extractSets(sorted, ByteSet.Intersection)
	if hasSet {
		merged := Set(acc)
		if merged.op == OpNone {
			return nil, true
		}
		rest = insertSorted(rest, merged)
	}
	return dedupSorted(rest), false
}

// extractSets splits sorted into its non-Set children (order preserved) and
// the fold of all Set children's ByteSets under reduce (ByteSet.Union for
// Or, ByteSet.Intersection for And).
func extractSets(sorted []RegEx, reduce func(ByteSet, ByteSet) ByteSet) (rest []RegEx, acc ByteSet, hasSet bool) {
	rest = make([]RegEx, 0, len(sorted))
	for _, c := range sorted {
		if c.op != OpSet {
			rest = append(rest, c)
			continue
		}
		if !hasSet {
			acc = c.set
			hasSet = true
		} else {
			acc = reduce(acc, c.set)
		}
	}
	return rest, acc, hasSet
}

func insertSorted(sorted []RegEx, x RegEx) []RegEx {
	i := 0
	for i < len(sorted) && sorted[i].Compare(x) < 0 {
		i++
	}
	out := make([]RegEx, 0, len(sorted)+1)
	out = append(out, sorted[:i]...)
	out = append(out, x)
	out = append(out, sorted[i:]...)
	return out
}

func dedupSorted(sorted []RegEx) []RegEx {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, c := range sorted[1:] {
		if !out[len(out)-1].Equal(c) {
			out = append(out, c)
		}
	}
	return out
}

// sig returns a canonical, collision-free string encoding of r's structure,
// used by the DFA builder to key its state interner by vectors of RegEx
// under structural equality. It is recomputed on demand
// rather than memoized: pattern vectors explored during DFA construction
// are small, and memoizing would cost every intermediate Then/Or/And call
// made while deriving, most of which are discarded immediately.
func (r RegEx) sig(b *strings.Builder) {
	switch r.op {
	case OpNone:
		b.WriteByte('N')
	case OpEpsilon:
		b.WriteByte('E')
	case OpSet:
		b.WriteByte('S')
		for _, w := range r.set.words {
			b.WriteString(strconvUint64Hex(w))
		}
	case OpCat, OpOr, OpAnd:
		b.WriteByte(opSigil(r.op))
		b.WriteByte('(')
		for _, c := range r.children {
			c.sig(b)
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case OpStar, OpNot:
		b.WriteByte(opSigil(r.op))
		b.WriteByte('(')
		r.children[0].sig(b)
		b.WriteByte(')')
	}
}

func opSigil(op Op) byte {
	switch op {
	case OpCat:
		return 'C'
	case OpOr:
		return 'O'
	case OpAnd:
		return 'A'
	case OpStar:
		return '*'
	case OpNot:
		return '!'
	default:
		return '?'
	}
}

const hexDigits = "0123456789abcdef"

func strconvUint64Hex(w uint64) string {
	var buf [16]byte
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[w&0xf]
		w >>= 4
	}
	return string(buf[:])
}

// Sig returns r's canonical structural signature as a string, suitable for
// use as a map key wherever structural equality needs a hashable
// representative (the DFA state interner's vector-of-RegEx keys).
func (r RegEx) Sig() string {
	var b strings.Builder
	r.sig(&b)
	return b.String()
}
