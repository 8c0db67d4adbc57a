package prefilter

import (
	"testing"

	derivex "github.com/coregx/derivex"
)

func literal(s string) derivex.RegEx {
	r := derivex.Empty()
	for i := 0; i < len(s); i++ {
		r = r.Then(derivex.Set(derivex.PointByteSet(s[i])))
	}
	return r
}

func TestFromPatterns_NoLiteralsReturnsNil(t *testing.T) {
	nonLiteral := derivex.Set(derivex.RangeByteSet('a', 'z')).Plus()

	pf, err := FromPatterns([]derivex.RegEx{nonLiteral})
	if err != nil {
		t.Fatalf("FromPatterns returned error: %v", err)
	}
	if pf != nil {
		t.Fatal("expected a nil Prefilter when no pattern reduces to a literal")
	}
}

func TestFromPatterns_FindsLiteralOccurrence(t *testing.T) {
	pf, err := FromPatterns([]derivex.RegEx{literal("waltz"), literal("nymph")})
	if err != nil {
		t.Fatal(err)
	}
	if pf == nil {
		t.Fatal("expected a non-nil Prefilter")
	}

	haystack := []byte("bad waltz jigs")
	pos := pf.Find(haystack, 0)
	if pos != 4 {
		t.Fatalf("Find() = %d, want 4", pos)
	}
}

func TestFromPatterns_FindFromOffsetSkipsEarlierHits(t *testing.T) {
	pf, err := FromPatterns([]derivex.RegEx{literal("vex")})
	if err != nil {
		t.Fatal(err)
	}

	haystack := []byte("vex quick vex")
	if pos := pf.Find(haystack, 1); pos != 10 {
		t.Fatalf("Find(haystack, 1) = %d, want 10", pos)
	}
}

func TestFromPatterns_FindNoOccurrence(t *testing.T) {
	pf, err := FromPatterns([]derivex.RegEx{literal("zzz")})
	if err != nil {
		t.Fatal(err)
	}
	if pos := pf.Find([]byte("bad nymph"), 0); pos != -1 {
		t.Fatalf("Find() = %d, want -1", pos)
	}
}

func TestPrefilter_NeverComplete(t *testing.T) {
	pf, err := FromPatterns([]derivex.RegEx{literal("for")})
	if err != nil {
		t.Fatal(err)
	}
	if pf.IsComplete() {
		t.Fatal("an Aho-Corasick prefilter must never be complete")
	}
	if pf.LiteralLen() != 0 {
		t.Fatalf("LiteralLen() = %d, want 0 when IsComplete() is false", pf.LiteralLen())
	}
}

func TestPrefilter_MayMatch(t *testing.T) {
	pf, err := FromPatterns([]derivex.RegEx{literal("quick"), literal("jigs")})
	if err != nil {
		t.Fatal(err)
	}
	ac, ok := pf.(*acPrefilter)
	if !ok {
		t.Fatalf("expected *acPrefilter, got %T", pf)
	}

	if !ac.MayMatch([]byte("the quick fox")) {
		t.Fatal("expected MayMatch to find 'quick'")
	}
	if ac.MayMatch([]byte("the slow fox")) {
		t.Fatal("expected MayMatch to report no occurrence")
	}
}

func TestFromPatterns_IgnoresNonLiteralAlongsideLiteral(t *testing.T) {
	nonLiteral := derivex.Set(derivex.RangeByteSet('0', '9')).Plus()

	pf, err := FromPatterns([]derivex.RegEx{nonLiteral, literal("bad")})
	if err != nil {
		t.Fatal(err)
	}
	if pf == nil {
		t.Fatal("expected a non-nil Prefilter since one pattern is literal")
	}
	if pos := pf.Find([]byte("123 bad 456"), 0); pos != 4 {
		t.Fatalf("Find() = %d, want 4", pos)
	}
}

func TestFromPatterns_EpsilonPatternIsIgnored(t *testing.T) {
	// Epsilon is literal (the empty string) but contributes nothing useful
	// to an Aho-Corasick search, so it must not be the sole reason a
	// Prefilter gets built.
	pf, err := FromPatterns([]derivex.RegEx{derivex.Empty()})
	if err != nil {
		t.Fatal(err)
	}
	if pf != nil {
		t.Fatal("expected a nil Prefilter for an all-epsilon pattern vector")
	}
}
