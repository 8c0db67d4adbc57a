package dfa

import (
	"testing"

	derivex "github.com/coregx/derivex"
)

func TestMinimize_PreservesLanguage(t *testing.T) {
	lower := derivex.Set(derivex.RangeByteSet('a', 'z')).Plus()

	d, err := From(lower)
	if err != nil {
		t.Fatal(err)
	}
	m := d.Minimize()

	inputs := []string{"", "a", "waltz", "nymph", "waltz bad", "123", "A"}
	for _, s := range inputs {
		wantClass, wantOK := d.Matches([]byte(s))
		gotClass, gotOK := m.Matches([]byte(s))
		if wantOK != gotOK || (wantOK && wantClass != gotClass) {
			t.Fatalf("Matches(%q): unminimized=(%d,%v) minimized=(%d,%v)", s, wantClass, wantOK, gotClass, gotOK)
		}
	}
}

func TestMinimize_ReducesOrEqualsStateCount(t *testing.T) {
	r := derivex.Set(derivex.RangeByteSet('0', '9')).Plus()
	d, err := From(r)
	if err != nil {
		t.Fatal(err)
	}
	m := d.Minimize()
	if m.NumStates() > d.NumStates() {
		t.Fatalf("minimized DFA has more states (%d) than original (%d)", m.NumStates(), d.NumStates())
	}
}

func TestMinimize_SinkAndStartConventionsPreserved(t *testing.T) {
	r := derivex.Set(derivex.RangeByteSet('a', 'z')).Plus()
	d, err := From(r)
	if err != nil {
		t.Fatal(err)
	}
	m := d.Minimize()

	if m.IsAccepting(m.SinkState()) {
		t.Fatal("sink must never accept after minimization")
	}
	for c := range m.Classes() {
		if m.StepClass(m.SinkState(), c) != m.SinkState() {
			t.Fatalf("sink should self-loop on class %d after minimization", c)
		}
	}
	if m.StartState() == m.SinkState() {
		t.Fatal("a satisfiable pattern's start and sink states should not coincide")
	}
}

func TestMinimize_IsIdempotent(t *testing.T) {
	r := derivex.Set(derivex.RangeByteSet('0', '9')).Or(derivex.Set(derivex.RangeByteSet('a', 'z'))).Plus()
	d, err := From(r)
	if err != nil {
		t.Fatal(err)
	}
	m1 := d.Minimize()
	m2 := m1.Minimize()
	if m1.NumStates() != m2.NumStates() {
		t.Fatalf("minimizing an already-minimal DFA changed its state count: %d -> %d", m1.NumStates(), m2.NumStates())
	}
}

func TestMinimize_DegeneratePattern(t *testing.T) {
	d, err := From(derivex.None())
	if err != nil {
		t.Fatal(err)
	}
	m := d.Minimize()
	if m.NumStates() != 1 {
		t.Fatalf("unsatisfiable pattern should minimize to 1 state, got %d", m.NumStates())
	}
}

func TestMinimize_MultiPatternKeepsAcceptClasses(t *testing.T) {
	lower := derivex.Set(derivex.RangeByteSet('a', 'z')).Plus()
	space := derivex.Set(derivex.PointByteSet(' ')).Plus()

	d, err := From(lower, space)
	if err != nil {
		t.Fatal(err)
	}
	m := d.Minimize()

	for _, tt := range []struct {
		s     string
		class int
	}{
		{"waltz", 0},
		{"   ", 1},
	} {
		class, ok := m.Matches([]byte(tt.s))
		if !ok || class != tt.class {
			t.Fatalf("Matches(%q) = (%d, %v), want (%d, true)", tt.s, class, ok, tt.class)
		}
	}
}
