package derivex

import "testing"

func TestByteSet_EmptyUniverse(t *testing.T) {
	empty := EmptyByteSet()
	universe := UniverseByteSet()

	for x := 0; x <= 255; x++ {
		if empty.Contains(byte(x)) {
			t.Fatalf("empty set should not contain %d", x)
		}
		if !universe.Contains(byte(x)) {
			t.Fatalf("universe should contain %d", x)
		}
	}

	if !empty.IsEmpty() || empty.IsUniverse() {
		t.Fatal("empty set flags wrong")
	}
	if universe.IsUniverse() == false || universe.IsEmpty() {
		t.Fatal("universe set flags wrong")
	}
}

func TestByteSet_Point(t *testing.T) {
	s := PointByteSet(149)
	for x := 0; x <= 255; x++ {
		want := x == 149
		if got := s.Contains(byte(x)); got != want {
			t.Fatalf("Contains(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestByteSet_Range(t *testing.T) {
	tests := []struct {
		name     string
		from, to byte
	}{
		{"single word", 10, 20},
		{"spans words", 30, 200},
		{"full range", 0, 255},
		{"single byte", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := RangeByteSet(tt.from, tt.to)
			for x := 0; x <= 255; x++ {
				want := x >= int(tt.from) && x <= int(tt.to)
				if got := s.Contains(byte(x)); got != want {
					t.Fatalf("Contains(%d) = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestByteSet_RangeInverted(t *testing.T) {
	// An inverted range (from > to) is pinned to the empty set rather than
	// treated as an error.
	s := RangeByteSet(200, 10)
	if !s.IsEmpty() {
		t.Fatal("inverted range should be empty")
	}
}

func TestByteSet_Complement(t *testing.T) {
	s := RangeByteSet(83, 149).Complement()
	for x := 0; x <= 255; x++ {
		want := x < 83 || x > 149
		if got := s.Contains(byte(x)); got != want {
			t.Fatalf("Contains(%d) = %v, want %v", x, got, want)
		}
	}

	if !EmptyByteSet().Complement().Equal(UniverseByteSet()) {
		t.Fatal("complement(empty) should be universe")
	}
	if !s.Complement().Equal(RangeByteSet(83, 149)) {
		t.Fatal("double complement should round-trip")
	}
}

func TestByteSet_DoubleComplementProperty(t *testing.T) {
	sets := []ByteSet{
		EmptyByteSet(),
		UniverseByteSet(),
		PointByteSet(0),
		PointByteSet(255),
		RangeByteSet(10, 245),
		RangeByteSet(60, 180).Union(RangeByteSet(10, 20)),
	}
	for _, s := range sets {
		if !s.Complement().Complement().Equal(s) {
			t.Fatalf("complement(complement(%v)) != %v", s, s)
		}
	}
}

func TestByteSet_DeMorgan(t *testing.T) {
	a := RangeByteSet(10, 100)
	b := RangeByteSet(60, 180)

	lhs := a.Union(b).Complement()
	rhs := a.Complement().Intersection(b.Complement())
	if !lhs.Equal(rhs) {
		t.Fatal("complement(union(a,b)) != intersection(complement(a), complement(b))")
	}
}

func TestByteSet_IntersectionUnion(t *testing.T) {
	set1 := RangeByteSet(83, 149).Intersection(RangeByteSet(59, 113))
	for x := 0; x <= 255; x++ {
		want := x >= 83 && x <= 113
		if got := set1.Contains(byte(x)); got != want {
			t.Fatalf("Contains(%d) = %v, want %v", x, got, want)
		}
	}

	set2 := RangeByteSet(0, 127).Intersection(RangeByteSet(128, 255))
	if !set2.IsEmpty() {
		t.Fatal("disjoint ranges should intersect to empty")
	}

	union := RangeByteSet(60, 180).Union(RangeByteSet(10, 20)).Union(RangeByteSet(150, 200))
	want := RangeByteSet(10, 20).Union(RangeByteSet(60, 200))
	if !union.Equal(want) {
		t.Fatal("union mismatch")
	}
}

func TestByteSet_Smallest(t *testing.T) {
	if _, ok := EmptyByteSet().Smallest(); ok {
		t.Fatal("smallest on empty set should report not-found")
	}
	if v, ok := RangeByteSet(83, 149).Smallest(); !ok || v != 83 {
		t.Fatalf("smallest = (%d, %v), want (83, true)", v, ok)
	}
}

func TestByteSet_Bytes(t *testing.T) {
	set := RangeByteSet(1, 3).Union(RangeByteSet(5, 7))
	var got []byte
	for b := range set.Bytes() {
		got = append(got, b)
	}
	want := []byte{1, 2, 3, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("Bytes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Bytes() = %v, want %v", got, want)
		}
	}
	if set.Count() != len(want) {
		t.Fatalf("Count() = %d, want %d", set.Count(), len(want))
	}
}

func TestByteSet_BytesEarlyStop(t *testing.T) {
	set := UniverseByteSet()
	n := 0
	for range set.Bytes() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("range-over-func did not stop early, n=%d", n)
	}
}

func TestByteSet_Compare(t *testing.T) {
	a := RangeByteSet(0, 10)
	b := RangeByteSet(0, 20)
	if a.Compare(a) != 0 {
		t.Fatal("Compare(a, a) should be 0")
	}
	if a.Compare(b) >= 0 {
		t.Fatal("Compare(a, b) should be negative")
	}
	if b.Compare(a) <= 0 {
		t.Fatal("Compare(b, a) should be positive")
	}
}
