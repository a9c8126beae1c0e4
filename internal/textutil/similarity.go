package textutil

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Candidate is a possibility that cleared the similarity cutoff.
type Candidate struct {
	Value string
	Score float64
}

// Ratio returns the sequence similarity of a and b in [0, 1], compared
// character by character.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// CloseMatches returns at most n possibilities whose similarity to word is at
// least cutoff, best first. Equal scores are ordered by descending value so
// the result is deterministic. Non-positive n or a cutoff outside [0, 1]
// yields nil.
func CloseMatches(word string, possibilities []string, n int, cutoff float64) []Candidate {
	if n <= 0 || cutoff < 0 || cutoff > 1 {
		return nil
	}

	matcher := difflib.NewMatcher(nil, nil)
	matcher.SetSeq2(chars(word))

	var found []Candidate
	for _, possibility := range possibilities {
		matcher.SetSeq1(chars(possibility))
		// Cheap upper bounds first; Ratio is quadratic.
		if matcher.RealQuickRatio() < cutoff || matcher.QuickRatio() < cutoff {
			continue
		}
		if score := matcher.Ratio(); score >= cutoff {
			found = append(found, Candidate{Value: possibility, Score: score})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score > found[j].Score
		}
		return found[i].Value > found[j].Value
	})
	if len(found) > n {
		found = found[:n]
	}
	return found
}

func chars(value string) []string {
	return strings.Split(value, "")
}
