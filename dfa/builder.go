package dfa

import (
	"errors"
	"sort"
	"strings"

	derivex "github.com/coregx/derivex"
)

// ErrNoPatterns is returned by From when called with no patterns: a DFA
// needs at least one pattern vector component to have any states at all.
var ErrNoPatterns = errors.New("dfa: From requires at least one pattern")

// From builds a DFA recognizing the given pattern vector via derivative-
// based state-space exploration: starting from the vector of patterns
// itself, every reachable derivative vector (one Deriv per pattern, per
// approximate-derivative-class representative byte) becomes a new state,
// interned by structural equality so that equivalent vectors collapse to
// the same state.
//
// Construction happens in two passes. The first discovers every reachable
// state, recomputing each state's own approximate derivative classes as it
// goes: a state's ADC depends on its own vector's shape, not the start
// vector's, so a stale partition computed once up front can be too coarse
// for states reached deeper in the derivation (see adc.go). The second
// pass folds every discovered state's ADC into one partition shared by the
// whole DFA - Hopcroft minimization and lex.Table both index transitions by
// a single alphabet - and builds the transition table against that shared
// partition. Since the shared partition only ever refines (never coarsens)
// any individual state's own ADC, a shared block's representative byte
// always falls inside one of that state's own ADC blocks, so deriving at
// it reproduces a vector the first pass already interned.
//
// The result is not minimized; call (*DFA).Minimize to do that.
func From(patterns ...derivex.RegEx) (*DFA, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	sinkVector := make([]derivex.RegEx, len(patterns))
	for i := range sinkVector {
		sinkVector[i] = derivex.None()
	}

	interned := map[string]int{}
	var states [][]derivex.RegEx

	intern := func(v []derivex.RegEx) (idx int, isNew bool) {
		sig := vectorSig(v)
		if existing, ok := interned[sig]; ok {
			return existing, false
		}
		idx = len(states)
		interned[sig] = idx
		states = append(states, v)
		return idx, true
	}

	intern(sinkVector)
	startIdx, startIsNew := intern(patterns)

	queue := make([]int, 0, 1)
	if startIsNew {
		queue = append(queue, startIdx)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		vector := states[cur]

		for _, block := range vectorClasses(vector) {
			rep, ok := block.Smallest()
			if !ok {
				continue // refine never emits an empty block
			}
			idx, isNew := intern(deriveVector(vector, rep))
			if isNew {
				queue = append(queue, idx)
			}
		}
	}

	cls := []derivex.ByteSet{derivex.UniverseByteSet()}
	for _, vector := range states {
		cls = refine(cls, vectorClasses(vector))
	}
	sort.Slice(cls, func(i, j int) bool { return cls[i].Compare(cls[j]) < 0 })

	next := make([][]int, len(states))
	for s, vector := range states {
		row := make([]int, len(cls))
		for c, block := range cls {
			rep, ok := block.Smallest()
			if !ok {
				continue
			}
			idx, isNew := intern(deriveVector(vector, rep))
			if isNew {
				panic("dfa: shared-partition representative derived a state the per-state pass never discovered")
			}
			row[c] = idx
		}
		next[s] = row
	}

	accept := make([]int, len(states))
	for i, vector := range states {
		accept[i] = acceptClass(vector)
	}

	return &DFA{
		patterns: patterns,
		states:   states,
		classes:  cls,
		next:     next,
		accept:   accept,
	}, nil
}

// vectorClasses folds the approximate derivative classes of each pattern in
// vector into one partition via cross-product refinement (see classes and
// refine in adc.go).
func vectorClasses(vector []derivex.RegEx) []derivex.ByteSet {
	cls := classes(vector[0])
	for _, r := range vector[1:] {
		cls = refine(cls, classes(r))
	}
	return cls
}

// deriveVector applies Deriv(b) to every component of vector.
func deriveVector(vector []derivex.RegEx, b byte) []derivex.RegEx {
	derived := make([]derivex.RegEx, len(vector))
	for i, r := range vector {
		derived[i] = r.Deriv(b)
	}
	return derived
}

// acceptClass returns the lowest index i such that vector[i].IsNullable(),
// or -1 if no component is nullable.
func acceptClass(vector []derivex.RegEx) int {
	for i, r := range vector {
		if r.IsNullable() {
			return i
		}
	}
	return -1
}

// vectorSig joins each component's structural signature into one string,
// used as the interning map key for a whole state vector.
func vectorSig(v []derivex.RegEx) string {
	var b strings.Builder
	for _, r := range v {
		b.WriteString(r.Sig())
		b.WriteByte(';')
	}
	return b.String()
}
