package textutil

import (
	"math"
	"testing"
)

func TestRatioKnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "pulp fiction", "pulp fiction", 1.0},
		{"both empty", "", "", 1.0},
		{"disjoint", "abc", "xyz", 0},
		{"shifted", "abcd", "bcde", 0.75},
		{"one empty", "abc", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioIsSymmetricForSimpleInputs(t *testing.T) {
	a, b := "the godfather", "the godfathr"
	if math.Abs(Ratio(a, b)-Ratio(b, a)) > 1e-9 {
		t.Fatalf("expected symmetric ratio, got %v vs %v", Ratio(a, b), Ratio(b, a))
	}
}

func TestCloseMatchesRanksBestFirst(t *testing.T) {
	got := CloseMatches("appel", []string{"ape", "apple", "peach", "puppy"}, 3, 0.6)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %#v", got)
	}
	if got[0].Value != "apple" || got[1].Value != "ape" {
		t.Fatalf("unexpected order: %#v", got)
	}
	for _, c := range got {
		if c.Score < 0.6 {
			t.Fatalf("candidate %q below cutoff: %v", c.Value, c.Score)
		}
	}
}

func TestCloseMatchesLimitsCount(t *testing.T) {
	possibilities := []string{"abc1", "abc2", "abc3", "abc4", "abc5", "abc6", "abc7"}
	got := CloseMatches("abc", possibilities, 5, 0.5)
	if len(got) != 5 {
		t.Fatalf("expected 5 matches, got %d", len(got))
	}
}

func TestCloseMatchesTieBreakIsDeterministic(t *testing.T) {
	got := CloseMatches("ab", []string{"ab1", "ab2"}, 5, 0.5)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %#v", got)
	}
	if got[0].Value != "ab2" || got[1].Value != "ab1" {
		t.Fatalf("expected descending value order on ties, got %#v", got)
	}
}

func TestCloseMatchesNothingAboveCutoff(t *testing.T) {
	if got := CloseMatches("zzzz", []string{"pulp fiction", "the room"}, 5, 0.5); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}

func TestCloseMatchesRejectsBadArguments(t *testing.T) {
	if got := CloseMatches("a", []string{"a"}, 0, 0.5); got != nil {
		t.Fatalf("expected nil for n=0, got %#v", got)
	}
	if got := CloseMatches("a", []string{"a"}, 1, 1.5); got != nil {
		t.Fatalf("expected nil for cutoff>1, got %#v", got)
	}
}
