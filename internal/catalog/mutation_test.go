package catalog_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"moviedb/internal/catalog"
	"moviedb/internal/testsupport"
)

func TestAddThenList(t *testing.T) {
	engine, store := newEngine(t, nil)
	if err := engine.Add(context.Background(), catalog.Movie{Title: "  Heat ", Year: 1995, Rating: 8.3, PosterURL: " "}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	movies := testsupport.MustList(t, store)
	if len(movies) != 1 || movies[0] != (catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3}) {
		t.Fatalf("unexpected movies %+v", movies)
	}
}

func TestAddValidation(t *testing.T) {
	engine, store := newEngine(t, nil)
	ctx := context.Background()
	if err := engine.Add(ctx, catalog.Movie{Title: "   "}); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
	if err := engine.Add(ctx, catalog.Movie{Title: "Heat", Rating: math.Inf(1)}); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for infinite rating, got %v", err)
	}
	if movies := testsupport.MustList(t, store); len(movies) != 0 {
		t.Fatalf("invalid adds changed the store: %+v", movies)
	}
}

func TestAddDuplicateKeepsOriginal(t *testing.T) {
	engine, store := newEngine(t, catalog.SeedMovies())
	err := engine.Add(context.Background(), catalog.Movie{Title: "The Room", Year: 2003, Rating: 10})
	if !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if catalog.Kind(err) != "duplicate_title" {
		t.Fatalf("Kind = %q", catalog.Kind(err))
	}
	for _, m := range testsupport.MustList(t, store) {
		if m.Title == "The Room" && (m.Rating != 3.6 || m.Year != 2000) {
			t.Fatalf("original record changed: %+v", m)
		}
	}
}

func TestAddFromLookupUsesServiceTitle(t *testing.T) {
	lookup := &fakeLookup{movie: catalog.Movie{Title: "Inception", Year: 2010, Rating: 8.8, PosterURL: "https://img.example/inception.jpg"}}
	engine, store := newEngine(t, nil, catalog.WithLookup(lookup))
	if !engine.HasLookup() {
		t.Fatal("expected HasLookup")
	}

	movie, err := engine.AddFromLookup(context.Background(), " inception ")
	if err != nil {
		t.Fatalf("AddFromLookup: %v", err)
	}
	if len(lookup.calls) != 1 || lookup.calls[0] != "inception" {
		t.Fatalf("lookup calls = %v", lookup.calls)
	}
	if movie.Title != "Inception" {
		t.Fatalf("returned movie %+v", movie)
	}
	movies := testsupport.MustList(t, store)
	if len(movies) != 1 || movies[0] != lookup.movie {
		t.Fatalf("stored %+v", movies)
	}
}

func TestAddFromLookupFailures(t *testing.T) {
	ctx := context.Background()

	engine, _ := newEngine(t, nil)
	if _, err := engine.AddFromLookup(ctx, "Heat"); !errors.Is(err, catalog.ErrExternalLookup) {
		t.Fatalf("expected ErrExternalLookup without lookup, got %v", err)
	}

	cause := errors.New("movie not found")
	lookup := &fakeLookup{err: cause}
	engine, store := newEngine(t, nil, catalog.WithLookup(lookup))
	_, err := engine.AddFromLookup(ctx, "Nope")
	if !errors.Is(err, catalog.ErrExternalLookup) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped lookup failure, got %v", err)
	}
	if movies := testsupport.MustList(t, store); len(movies) != 0 {
		t.Fatalf("failed lookup changed the store: %+v", movies)
	}

	if _, err := engine.AddFromLookup(ctx, "  "); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}

func TestAddFromLookupDuplicate(t *testing.T) {
	lookup := &fakeLookup{movie: catalog.Movie{Title: "The Room", Year: 2003, Rating: 3.7}}
	engine, _ := newEngine(t, catalog.SeedMovies(), catalog.WithLookup(lookup))
	if _, err := engine.AddFromLookup(context.Background(), "the room"); !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	engine, store := newEngine(t, catalog.SeedMovies())
	ctx := context.Background()
	if err := engine.Update(ctx, "The Room", 4.2, 2003); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := engine.Get(ctx, "The Room")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Rating != 4.2 || got.Year != 2003 {
		t.Fatalf("update not applied: %+v", got)
	}
	if err := engine.Update(ctx, "Missing", 1, 1); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := engine.Update(ctx, "The Room", math.NaN(), 1); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(testsupport.MustList(t, store)) != 10 {
		t.Fatal("update changed collection size")
	}
}

func TestUpdateFromInput(t *testing.T) {
	engine, _ := newEngine(t, catalog.SeedMovies())
	ctx := context.Background()

	if err := engine.UpdateFromInput(ctx, "Pulp Fiction", " 9.1 ", "1995"); err != nil {
		t.Fatalf("UpdateFromInput: %v", err)
	}
	got, _ := engine.Get(ctx, "Pulp Fiction")
	if got.Rating != 9.1 || got.Year != 1995 {
		t.Fatalf("unexpected record %+v", got)
	}

	cases := []struct {
		name, title, rating, year string
		want                      error
	}{
		{"missing title", "Nope", "abc", "xyz", catalog.ErrNotFound},
		{"bad rating", "Pulp Fiction", "great", "2000", catalog.ErrInvalidInput},
		{"bad year", "Pulp Fiction", "1.0", "last year", catalog.ErrInvalidInput},
		{"nan rating", "Pulp Fiction", "NaN", "2000", catalog.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := engine.UpdateFromInput(ctx, tc.title, tc.rating, tc.year)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			after, _ := engine.Get(ctx, "Pulp Fiction")
			if after.Rating != 9.1 || after.Year != 1995 {
				t.Fatalf("record changed by rejected input: %+v", after)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	engine, store := newEngine(t, catalog.SeedMovies())
	ctx := context.Background()
	if err := engine.Delete(ctx, "The Room"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, m := range testsupport.MustList(t, store) {
		if m.Title == "The Room" {
			t.Fatal("deleted movie still listed")
		}
	}
	if err := engine.Delete(ctx, "The Room"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := len(testsupport.MustList(t, store)); got != 9 {
		t.Fatalf("expected 9 movies, got %d", got)
	}
}

func TestParseHelpers(t *testing.T) {
	if v, err := catalog.ParseRating(" 7.5 "); err != nil || v != 7.5 {
		t.Fatalf("ParseRating = %v, %v", v, err)
	}
	if _, err := catalog.ParseRating("Inf"); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for Inf, got %v", err)
	}
	if v, err := catalog.ParseYear("1999"); err != nil || v != 1999 {
		t.Fatalf("ParseYear = %v, %v", v, err)
	}
	if _, err := catalog.ParseYear("19.5"); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWrapFormatsMessage(t *testing.T) {
	cause := errors.New("boom")
	err := catalog.Wrap(catalog.ErrNotFound, "delete", `"Heat"`, cause)
	if err.Error() != `movie not found: delete: "Heat": boom` {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, catalog.ErrNotFound) || !errors.Is(err, cause) {
		t.Fatal("wrapped error lost its chain")
	}
	if got := catalog.Wrap(nil, "", "", nil).Error(); got != "catalog failure" {
		t.Fatalf("default detail = %q", got)
	}
}
