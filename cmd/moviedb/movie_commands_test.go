package main

import (
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviedb/internal/catalog"
)

func TestListSeededMemoryBackend(t *testing.T) {
	env := setupCLI(t)

	movies := listJSON(t, env)
	if len(movies) != 10 {
		t.Fatalf("expected 10 seeded movies, got %d", len(movies))
	}
	if movies[0].Title != "The Shawshank Redemption" {
		t.Fatalf("expected seed order to be kept, got %q first", movies[0].Title)
	}

	out, _, err := runCLI(t, env, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "The Godfather: Part II")
	requireContains(t, out, "10 movies in total")
}

func TestAddPersistsWithJSONBackend(t *testing.T) {
	env := setupCLI(t, withBackend("json"))

	out, _, err := runCLI(t, env, "", "add", "Inception", "--year", "2010", "--rating", "8.8")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Movie Inception successfully added")

	if _, err := os.Stat(env.jsonPath); err != nil {
		t.Fatalf("expected data file at %s: %v", env.jsonPath, err)
	}
	movies := listJSON(t, env)
	if len(movies) != 1 || movies[0] != (catalog.Movie{Title: "Inception", Year: 2010, Rating: 8.8}) {
		t.Fatalf("unexpected movies after reopen: %#v", movies)
	}
}

func TestAddRejectsDuplicateTitle(t *testing.T) {
	env := setupCLI(t)

	_, _, err := runCLI(t, env, "", "add", "Pulp", "Fiction", "--year", "1", "--rating", "1")
	if !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	requireContains(t, err.Error(), `Movie "Pulp Fiction" already exists.`)
}

func TestAddWithoutLookupNeedsYearAndRating(t *testing.T) {
	env := setupCLI(t)

	_, _, err := runCLI(t, env, "", "add", "Inception", "--year", "2010")
	if err == nil {
		t.Fatal("expected error when rating is missing")
	}
	requireContains(t, err.Error(), "--year and --rating")
}

func TestAddFetchesFromOMDb(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "secret" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"Response":"True","Title":"Inception","Year":"2010","imdbRating":"8.8","Poster":"https://img.example/inception.jpg"}`))
	}))
	t.Cleanup(server.Close)

	env := setupCLI(t, withBackend("json"), withOMDb(server.URL, "secret"))

	out, _, err := runCLI(t, env, "", "add", "inception")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Movie Inception successfully added")

	movies := listJSON(t, env)
	want := catalog.Movie{Title: "Inception", Year: 2010, Rating: 8.8, PosterURL: "https://img.example/inception.jpg"}
	if len(movies) != 1 || movies[0] != want {
		t.Fatalf("unexpected movies: %#v", movies)
	}
}

func TestAddReportsLookupFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	t.Cleanup(server.Close)

	env := setupCLI(t, withOMDb(server.URL, "secret"))

	_, _, err := runCLI(t, env, "", "add", "Nonexistent")
	if !errors.Is(err, catalog.ErrExternalLookup) {
		t.Fatalf("expected ErrExternalLookup, got %v", err)
	}
	requireContains(t, err.Error(), "Failed to add movie")
}

func TestDeleteMissingTitle(t *testing.T) {
	env := setupCLI(t)

	_, _, err := runCLI(t, env, "", "delete", "Titanic")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	requireContains(t, err.Error(), `Movie "Titanic" doesn't exist.`)
}

func TestDeleteRemovesFromJSONStore(t *testing.T) {
	env := setupCLI(t, withBackend("json"))
	if _, _, err := runCLI(t, env, "", "add", "Alien", "--year", "1979", "--rating", "8.5"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env, "", "delete", "Alien")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	requireContains(t, out, "Movie Alien successfully deleted")
	if movies := listJSON(t, env); len(movies) != 0 {
		t.Fatalf("expected empty catalog, got %#v", movies)
	}
}

func TestUpdateRejectsNonNumericRating(t *testing.T) {
	env := setupCLI(t, withBackend("sqlite"))
	if _, _, err := runCLI(t, env, "", "add", "Alien", "--year", "1979", "--rating", "8.5"); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, _, err := runCLI(t, env, "", "update", "Alien", "--rating", "great", "--year", "1986")
	if !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	movies := listJSON(t, env)
	if len(movies) != 1 || movies[0].Rating != 8.5 || movies[0].Year != 1979 {
		t.Fatalf("record changed after rejected update: %#v", movies)
	}

	out, _, err := runCLI(t, env, "", "update", "Alien", "--rating", "8.6", "--year", "1986")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	requireContains(t, out, "Movie Alien successfully updated")
	movies = listJSON(t, env)
	if movies[0].Rating != 8.6 || movies[0].Year != 1986 {
		t.Fatalf("update not applied: %#v", movies[0])
	}
}

func TestStatsJSON(t *testing.T) {
	env := setupCLI(t)

	out, _, err := runCLI(t, env, "", "--json", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var stats catalog.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Count != 10 || stats.Max != 9.5 || stats.Min != 3.6 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if len(stats.Best) != 1 || stats.Best[0] != "The Shawshank Redemption" {
		t.Fatalf("unexpected best: %v", stats.Best)
	}
	if len(stats.Worst) != 1 || stats.Worst[0] != "The Room" {
		t.Fatalf("unexpected worst: %v", stats.Worst)
	}
}

func TestStatsOnEmptyCatalog(t *testing.T) {
	env := setupCLI(t, withoutSeed())

	_, _, err := runCLI(t, env, "", "stats")
	if !errors.Is(err, catalog.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
	requireContains(t, err.Error(), "No movies in the database.")
}

func TestRandomPicksSeededMovie(t *testing.T) {
	env := setupCLI(t)

	out, _, err := runCLI(t, env, "", "random")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	requireContains(t, out, "Your movie for tonight: ")
}

func TestSearchFallsBackToCloseMatches(t *testing.T) {
	env := setupCLI(t)

	out, _, err := runCLI(t, env, "", "search", "godfater")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, `The movie "godfater" does not exist. Did you mean:`)
	requireContains(t, out, "The Godfather (1972), 9.2")

	out, _, err = runCLI(t, env, "", "search", "DARK")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.Contains(out, "Did you mean") {
		t.Fatalf("exact match reported as fuzzy: %q", out)
	}
	requireContains(t, out, "The Dark Knight (2008), 9.0")

	_, _, err = runCLI(t, env, "", "search", "zzzzzz")
	if !errors.Is(err, catalog.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestSortYearAscending(t *testing.T) {
	env := setupCLI(t)

	out, _, err := runCLI(t, env, "", "--json", "sort", "year", "--asc")
	if err != nil {
		t.Fatalf("sort year: %v", err)
	}
	var movies []catalog.Movie
	if err := json.Unmarshal([]byte(out), &movies); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if movies[0].Title != "The Godfather" || movies[len(movies)-1].Title != "Everything Everywhere All At Once" {
		t.Fatalf("unexpected order: first %q last %q", movies[0].Title, movies[len(movies)-1].Title)
	}
}

func TestSortRatingTable(t *testing.T) {
	env := setupCLI(t)

	out, _, err := runCLI(t, env, "", "sort", "rating")
	if err != nil {
		t.Fatalf("sort rating: %v", err)
	}
	if strings.Index(out, "The Shawshank Redemption") > strings.Index(out, "The Room") {
		t.Fatalf("expected best movie before worst:\n%s", out)
	}
}

func TestFilterBounds(t *testing.T) {
	env := setupCLI(t)

	out, _, err := runCLI(t, env, "", "--json", "filter", "--min-rating", "9", "--start-year", "1990")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	var movies []catalog.Movie
	if err := json.Unmarshal([]byte(out), &movies); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(movies) != 2 || movies[0].Title != "The Shawshank Redemption" || movies[1].Title != "The Dark Knight" {
		t.Fatalf("unexpected filter result: %#v", movies)
	}
}

func TestFilterRejectsInvertedYears(t *testing.T) {
	env := setupCLI(t)

	_, _, err := runCLI(t, env, "", "filter", "--start-year", "2010", "--end-year", "2000")
	if !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, _, err = runCLI(t, env, "", "filter", "--min-rating", "high")
	if !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad rating, got %v", err)
	}
}

func TestHistogramWritesPNG(t *testing.T) {
	env := setupCLI(t)
	target := filepath.Join(env.baseDir, "charts", "ratings.png")

	out, _, err := runCLI(t, env, "", "histogram", target)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	requireContains(t, out, "Histogram saved to "+target)

	f, err := os.Open(target)
	if err != nil {
		t.Fatalf("open histogram: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestHistogramDefaultsToConfiguredPath(t *testing.T) {
	env := setupCLI(t)

	if _, _, err := runCLI(t, env, "", "histogram"); err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if _, err := os.Stat(env.histogram); err != nil {
		t.Fatalf("expected histogram at %s: %v", env.histogram, err)
	}
}

func TestHistogramOnEmptyCatalog(t *testing.T) {
	env := setupCLI(t, withoutSeed())

	_, _, err := runCLI(t, env, "", "histogram")
	if !errors.Is(err, catalog.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestWebsiteUsesCustomTemplate(t *testing.T) {
	base := t.TempDir()
	tmpl := filepath.Join(base, "page.html")
	if err := os.WriteFile(tmpl, []byte("<body>__TEMPLATE_MOVIE_GRID__</body>\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	env := setupCLI(t, withTemplate(tmpl))

	out, _, err := runCLI(t, env, "", "website")
	if err != nil {
		t.Fatalf("website: %v", err)
	}
	requireContains(t, out, "Website was generated successfully")

	data, err := os.ReadFile(env.websitePath)
	if err != nil {
		t.Fatalf("read website: %v", err)
	}
	page := string(data)
	if !strings.HasPrefix(page, "<body><div class=\"movie-card\">") {
		t.Fatalf("template not applied: %q", page)
	}
	if strings.Count(page, `class="movie-card"`) != 10 {
		t.Fatalf("expected 10 cards in %q", page)
	}
	requireContains(t, page, "Rating: 9.0")
}
