// Package lex flattens a derivative-based DFA into a dense transition table
// and drives maximal-munch lexical scanning over it.
package lex

import (
	"errors"
	"fmt"

	"github.com/coregx/derivex/dfa"
	"github.com/coregx/derivex/internal/conv"
)

// Command says what a Scanner does when it completes a token of a given
// class: Emit hands the token to the caller, Skip consumes it silently
// (the usual choice for whitespace or comments).
type Command int

const (
	Emit Command = iota
	Skip
)

// ErrEpsilonAcceptingStart is returned by NewTable when the DFA's start
// state already accepts: a pattern vector recognizing the empty string
// before any byte is consumed would make maximal-munch scanning spin
// forever on zero-width matches, so table construction rejects it outright
// rather than building a Table a Scanner could get stuck on.
var ErrEpsilonAcceptingStart = errors.New("lex: start state accepts the empty string")

// Table is a dense 256×N transition table flattened from a dfa.DFA. It
// re-indexes the DFA's N non-sink states (DFA space: sink=0, the rest
// 1..N) into table space: table state i corresponds to DFA state i+1, the
// sink is the single out-of-range index N (never stored as a row), and
// START_STATE is always 0. Missing/sink-bound transitions default to N, so
// every (state, byte) pair is a single slice lookup with no dfa.DFA
// indirection at scan time.
type Table struct {
	numStates int // N: number of non-sink states, and also the sink's table index
	next      []uint32 // len == numStates*256; next[state*256+b], default fill N
	accept    []int32  // len == numStates+1; accept[numStates] is always -1 (the sink)
	commands  []Command
}

// NewTable flattens d into a Table. commands must have one entry per
// pattern in d (d.NumPatterns()), naming what to do when that pattern's
// class is the longest match found.
func NewTable(d *dfa.DFA, commands []Command) (*Table, error) {
	if d.IsAccepting(d.StartState()) {
		return nil, ErrEpsilonAcceptingStart
	}
	if len(commands) != d.NumPatterns() {
		return nil, fmt.Errorf("lex: NewTable: got %d commands for %d patterns", len(commands), d.NumPatterns())
	}

	n := d.NumStates() - 1 // non-sink DFA states, indexed 1..NumStates()-1
	next := make([]uint32, n*256)
	accept := make([]int32, n+1)

	sinkFill := conv.IntToUint32(n)
	for i := 0; i < n; i++ {
		dfaIdx := i + 1
		for b := 0; b < 256; b++ {
			dest := d.Step(dfaIdx, byte(b))
			if dest == d.SinkState() {
				next[i*256+b] = sinkFill
			} else {
				next[i*256+b] = conv.IntToUint32(dest - 1)
			}
		}
		if c := d.AcceptClass(dfaIdx); c >= 0 {
			accept[i] = conv.IntToInt32(c)
		} else {
			accept[i] = -1
		}
	}
	accept[n] = -1 // the sink never accepts

	return &Table{
		numStates: n,
		next:      next,
		accept:    accept,
		commands:  append([]Command(nil), commands...),
	}, nil
}

// NumStates returns the number of non-sink states in the table.
func (tbl *Table) NumStates() int {
	return tbl.numStates
}

// Step returns the state reached from state by consuming byte b.
func (tbl *Table) Step(state int, b byte) int {
	if state == tbl.numStates {
		return tbl.numStates // the sink self-loops; it has no stored row
	}
	return int(tbl.next[state*256+int(b)])
}

// AcceptClass returns the pattern class state accepts, or -1 if it does
// not accept.
func (tbl *Table) AcceptClass(state int) int {
	return int(tbl.accept[state])
}

// IsAccepting reports whether state accepts any pattern.
func (tbl *Table) IsAccepting(state int) bool {
	return tbl.accept[state] >= 0
}

// StartState is the state a scan begins in: always 0 in table space.
func (tbl *Table) StartState() int {
	return 0
}

// SinkState is the dead state: once reached, no further input can extend
// the current token. In table space this is always NumStates().
func (tbl *Table) SinkState() int {
	return tbl.numStates
}

// IsSink reports whether state is the dead state.
func (tbl *Table) IsSink(state int) bool {
	return state == tbl.numStates
}

// Command returns the Command registered for the given pattern class.
func (tbl *Table) Command(class int) Command {
	return tbl.commands[class]
}
