// Package dfa builds deterministic finite automata directly from Brzozowski
// derivatives of a vector of patterns, using approximate derivative classes
// to avoid enumerating the full 256-byte alphabet per state, and minimizes
// the result via Hopcroft partition refinement.
package dfa

import derivex "github.com/coregx/derivex"

// DFA is a deterministic automaton over a vector of patterns. Each state is
// (conceptually) a vector of RegEx, one component per pattern: component i
// is "what remains to match pattern i" given the bytes consumed so far.
//
// State 0 is always the sink: every component is derivex.None(), no
// outgoing transition ever leaves it, and it never accepts. State 1 is
// always the start state (the original pattern vector) — unless that
// vector is itself equivalent to the sink (every pattern is unsatisfiable),
// in which case start and sink coincide at state 0 and the DFA has exactly
// one state.
type DFA struct {
	patterns []derivex.RegEx
	states   [][]derivex.RegEx
	classes  []derivex.ByteSet
	next     [][]int
	accept   []int
}

// NumStates returns the number of states in d.
func (d *DFA) NumStates() int {
	return len(d.states)
}

// NumPatterns returns the number of patterns (token classes) d was built
// from.
func (d *DFA) NumPatterns() int {
	return len(d.patterns)
}

// Classes returns the alphabet partition d's transitions are indexed by.
// Every byte in Classes()[i] transitions identically from any given state.
func (d *DFA) Classes() []derivex.ByteSet {
	return d.classes
}

// ClassOf returns the index into Classes() that byte b belongs to.
func (d *DFA) ClassOf(b byte) int {
	for i, c := range d.classes {
		if c.Contains(b) {
			return i
		}
	}
	panic("dfa: classes do not cover the full byte alphabet")
}

// Step returns the state reached from state by consuming byte b.
func (d *DFA) Step(state int, b byte) int {
	return d.next[state][d.ClassOf(b)]
}

// StepClass returns the state reached from state by consuming a byte from
// the class at classIdx, bypassing the linear ClassOf scan.
func (d *DFA) StepClass(state, classIdx int) int {
	return d.next[state][classIdx]
}

// AcceptClass returns the lowest-indexed pattern that state accepts (the
// pattern is nullable in that state), or -1 if state accepts nothing.
func (d *DFA) AcceptClass(state int) int {
	return d.accept[state]
}

// IsAccepting reports whether state accepts any pattern.
func (d *DFA) IsAccepting(state int) bool {
	return d.accept[state] >= 0
}

// StartState is the state the automaton begins in.
func (d *DFA) StartState() int {
	if len(d.states) == 1 {
		return 0
	}
	return 1
}

// SinkState is the dead state.
func (d *DFA) SinkState() int {
	return 0
}

// Matches reports whether data, taken as a whole, is recognized by any of
// d's patterns, returning the lowest-indexed pattern that accepts it.
func (d *DFA) Matches(data []byte) (class int, ok bool) {
	s := d.StartState()
	for _, b := range data {
		s = d.Step(s, b)
	}
	c := d.AcceptClass(s)
	return c, c >= 0
}

// State returns the RegEx vector associated with state i, for
// introspection and testing.
func (d *DFA) State(i int) []derivex.RegEx {
	return d.states[i]
}
