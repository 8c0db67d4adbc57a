// Package prefilter narrows candidate start positions for a pattern vector
// before a lex.Table walk ever begins.
//
// A handful of patterns in a lexer's vector reduce to a single fixed literal
// (derivex.RegEx.Literal reports this). When at least one does, this package
// builds a github.com/coregx/ahocorasick automaton over those literals and
// uses it as a never-false-negative pre-check for those literals: if the
// automaton reports no occurrence anywhere in a haystack, none of the literal
// patterns can match it. Non-literal patterns in the vector are not covered
// by the check, so the DFA walk can be skipped on that basis only when every
// pattern in the vector is literal. It never answers "does match" on its own
// - only the DFA and lex.Table are authoritative for classes and spans.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	derivex "github.com/coregx/derivex"
)

// Prefilter narrows candidate positions ahead of running a full DFA walk.
// Find may return positions that do not in fact extend to a full match
// (IsComplete tells a caller whether that verification step can be
// skipped); it never skips a position where one of its literals occurs.
// Positions where only a non-literal pattern of the vector matches are not
// reported.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or
	// -1 if no literal occurs anywhere in haystack[start:].
	Find(haystack []byte, start int) int

	// IsComplete reports whether a Find hit is itself a full, authoritative
	// match, with no DFA verification required.
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true, 0
	// otherwise.
	LiteralLen() int

	// HeapBytes estimates the heap memory held by the prefilter, for
	// profiling and memory budgeting.
	HeapBytes() int
}

// acPrefilter wraps an Aho-Corasick automaton built from the fixed literal
// patterns found in a pattern vector. It is never complete: derivex uses it
// purely as a conservative pre-reject ahead of the DFA, since a vector can
// mix literal and non-literal patterns and only the DFA knows which of them
// actually wins at a given position.
type acPrefilter struct {
	auto       *ahocorasick.Automaton
	literalLen int // total bytes across all patterns fed to the automaton
}

// FromPatterns builds a Prefilter over every pattern in patterns that
// reduces to a non-empty fixed literal. It returns (nil, nil) if none do -
// callers should treat a nil Prefilter as "no pre-check available" and fall
// straight through to the DFA.
func FromPatterns(patterns []derivex.RegEx) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	literalLen := 0
	found := false

	for _, p := range patterns {
		lit, ok := p.Literal()
		if !ok || len(lit) == 0 {
			continue
		}
		builder.AddPattern(lit)
		literalLen += len(lit)
		found = true
	}
	if !found {
		return nil, nil
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &acPrefilter{auto: auto, literalLen: literalLen}, nil
}

// Find implements Prefilter.
func (p *acPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter. Always false: a literal hit only says
// that pattern could win here, not that it does once the DFA's other
// patterns and maximal-munch rule are applied.
func (p *acPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.
func (p *acPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter. The automaton itself does not expose a
// memory accounting method, so this reports the size of the literal bytes
// fed into it as a lower-bound estimate.
func (p *acPrefilter) HeapBytes() int {
	return p.literalLen
}

// MayMatch reports whether any literal pattern occurs anywhere in haystack.
// It is the never-false-negative pre-check for the literal patterns:
// MayMatch returning false proves no literal pattern in the vector can
// match; it says nothing about the vector's non-literal patterns.
// MayMatch returning true proves nothing by itself - the DFA
// remains the only source of truth for an actual match.
func (p *acPrefilter) MayMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}
