package lex

import "fmt"

// Token is one maximal-munch match: Class identifies which pattern in the
// Table's vector matched, and [Start, End) is its byte span in the scanned
// input.
type Token struct {
	Class      int
	Start, End int
}

// Bytes returns the slice of data spanned by t.
func (t Token) Bytes(data []byte) []byte {
	return data[t.Start:t.End]
}

// ScanError reports that scanning got stuck: no pattern in the table
// accepted any non-empty prefix of the input starting at Pos.
type ScanError struct {
	Pos int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("lex: no pattern matches at byte offset %d", e.Pos)
}

// Scanner drives maximal-munch scanning over a Table: repeatedly, from the
// current position, it follows transitions as far as possible and commits
// to the longest prefix that ended in an accepting state (the last one
// seen, since patterns never become unacceptable and then acceptable again
// further along the same run without the table recording each crossing).
//
// Once a Scanner hits a ScanError it is terminal: it does not attempt to
// resynchronize by skipping bytes, and every subsequent call to Next
// returns (Token{}, false) with Err() continuing to report the same error.
type Scanner struct {
	table *Table
	data  []byte
	pos   int
	err   error
}

// NewScanner returns a Scanner over data driven by table.
func NewScanner(table *Table, data []byte) *Scanner {
	return &Scanner{table: table, data: data}
}

// Err returns the error that stopped the scan, or nil if the scan has not
// failed (it may simply be at or past the end of the input).
func (sc *Scanner) Err() error {
	return sc.err
}

// Pos returns the scanner's current position in data.
func (sc *Scanner) Pos() int {
	return sc.pos
}

// Next returns the next emitted token, skipping over any tokens whose
// class carries a Skip command. It returns (Token{}, false) at end of
// input or once a ScanError has occurred; check Err() to distinguish the
// two.
func (sc *Scanner) Next() (Token, bool) {
	for {
		if sc.err != nil || sc.pos >= len(sc.data) {
			return Token{}, false
		}
		tok, ok := sc.scanOne()
		if !ok {
			return Token{}, false
		}
		if sc.table.Command(tok.Class) == Skip {
			continue
		}
		return tok, true
	}
}

// scanOne performs one maximal-munch step from sc.pos, advancing sc.pos
// past the matched span on success.
func (sc *Scanner) scanOne() (Token, bool) {
	start := sc.pos
	state := sc.table.StartState()

	lastAcceptEnd := -1
	lastAcceptClass := -1

	pos := start
	for pos < len(sc.data) {
		next := sc.table.Step(state, sc.data[pos])
		if sc.table.IsSink(next) {
			break
		}
		state = next
		pos++
		if sc.table.IsAccepting(state) {
			lastAcceptEnd = pos
			lastAcceptClass = sc.table.AcceptClass(state)
		}
	}

	if lastAcceptEnd < 0 {
		sc.err = &ScanError{Pos: start}
		return Token{}, false
	}

	sc.pos = lastAcceptEnd
	return Token{Class: lastAcceptClass, Start: start, End: lastAcceptEnd}, true
}

// All returns an iterator over every emitted token, stopping at end of
// input or at the first ScanError (check Err() after the loop to tell
// which).
//
// Usage:
//
//	for tok := range sc.All() {
//	    ...
//	}
//	if err := sc.Err(); err != nil {
//	    ...
//	}
func (sc *Scanner) All() func(yield func(Token) bool) {
	return func(yield func(Token) bool) {
		for {
			tok, ok := sc.Next()
			if !ok {
				return
			}
			if !yield(tok) {
				return
			}
		}
	}
}
