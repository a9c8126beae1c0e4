package catalog

import (
	"context"
	"fmt"
	"strings"

	"moviedb/internal/logging"
	"moviedb/internal/textutil"
)

// Search looks up movies by title.
//
// Every title containing query (ignoring case) is returned as an exact match,
// in store order. Only when nothing contains the query does Search fall back
// to approximate matching: up to five distinct lowercased titles whose
// similarity to the lowercased query is at least 0.5, best first. ErrNoMatch
// is returned when neither strategy finds anything.
func (e *Engine) Search(ctx context.Context, query string) (SearchResult, error) {
	movies, err := e.snapshot(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	needle := textutil.Fold(query)
	folded := make([]string, len(movies))
	var exact []Match
	for i, m := range movies {
		folded[i] = textutil.Fold(m.Title)
		if strings.Contains(folded[i], needle) {
			exact = append(exact, Match{Movie: m, Score: 1})
		}
	}
	if len(exact) > 0 {
		return SearchResult{Kind: MatchExact, Matches: exact}, nil
	}

	// Titles that differ only by case collapse to one candidate, ordered by
	// first appearance; the last record in store order represents it.
	byFolded := make(map[string]Movie, len(movies))
	candidates := make([]string, 0, len(movies))
	for i, key := range folded {
		if _, ok := byFolded[key]; !ok {
			candidates = append(candidates, key)
		}
		byFolded[key] = movies[i]
	}

	similar := textutil.CloseMatches(needle, candidates, fuzzyLimit, fuzzyCutoff)
	if len(similar) == 0 {
		return SearchResult{}, Wrap(ErrNoMatch, "search", fmt.Sprintf("%q", query), nil)
	}

	matches := make([]Match, 0, len(similar))
	for _, c := range similar {
		matches = append(matches, Match{Movie: byFolded[c.Value], Score: c.Score})
	}
	e.log(ctx).Debug("search fell back to approximate matching",
		logging.String("query", query),
		logging.Int("candidates", len(matches)))
	return SearchResult{Kind: MatchFuzzy, Matches: matches}, nil
}
