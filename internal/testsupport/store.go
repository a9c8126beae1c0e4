package testsupport

import (
	"context"
	"errors"
	"testing"

	"moviedb/internal/catalog"
)

// StoreFactory returns a fresh, empty store for one subtest.
type StoreFactory func(t *testing.T) catalog.Store

// RunStoreContract exercises the behaviour every catalog.Store must share.
func RunStoreContract(t *testing.T, newStore StoreFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		store := newStore(t)
		movies, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(movies) != 0 {
			t.Fatalf("expected empty collection, got %v", movies)
		}
	})

	t.Run("add then list keeps order", func(t *testing.T) {
		store := newStore(t)
		want := []catalog.Movie{
			{Title: "Zodiac", Year: 2007, Rating: 7.7},
			{Title: "Alien", Year: 1979, Rating: 8.5, PosterURL: "https://img.example/alien.jpg"},
			{Title: "Memento", Year: 2000, Rating: 8.4},
		}
		for _, m := range want {
			MustAdd(t, store, m)
		}
		got := MustList(t, store)
		if len(got) != len(want) {
			t.Fatalf("expected %d movies, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("movie %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("duplicate keeps original", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
		err := store.Add(ctx, catalog.Movie{Title: "Heat", Year: 2000, Rating: 1})
		if !errors.Is(err, catalog.ErrDuplicateTitle) {
			t.Fatalf("expected ErrDuplicateTitle, got %v", err)
		}
		got := MustList(t, store)
		if len(got) != 1 || got[0].Year != 1995 || got[0].Rating != 8.3 {
			t.Fatalf("original record changed: %+v", got)
		}
	})

	t.Run("titles are case sensitive", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
		MustAdd(t, store, catalog.Movie{Title: "heat", Year: 1986, Rating: 4.4})
		if got := MustList(t, store); len(got) != 2 {
			t.Fatalf("expected two records, got %+v", got)
		}
	})

	t.Run("delete then list", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
		MustAdd(t, store, catalog.Movie{Title: "Ronin", Year: 1998, Rating: 7.2})
		if err := store.Delete(ctx, "Heat"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		got := MustList(t, store)
		if len(got) != 1 || got[0].Title != "Ronin" {
			t.Fatalf("unexpected collection after delete: %+v", got)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
		if err := store.Delete(ctx, "Ronin"); !errors.Is(err, catalog.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if got := MustList(t, store); len(got) != 1 {
			t.Fatalf("collection changed: %+v", got)
		}
	})

	t.Run("update replaces rating and year only", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, catalog.Movie{Title: "Alien", Year: 1979, Rating: 8.5, PosterURL: "https://img.example/alien.jpg"})
		if err := store.Update(ctx, "Alien", 9.1, 1980); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got := MustList(t, store)
		want := catalog.Movie{Title: "Alien", Year: 1980, Rating: 9.1, PosterURL: "https://img.example/alien.jpg"}
		if len(got) != 1 || got[0] != want {
			t.Fatalf("unexpected record after update: %+v", got)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		store := newStore(t)
		if err := store.Update(ctx, "Alien", 9.1, 1980); !errors.Is(err, catalog.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list returns a copy", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3})
		got := MustList(t, store)
		got[0].Rating = 0
		if again := MustList(t, store); again[0].Rating != 8.3 {
			t.Fatalf("List result aliases store state: %+v", again)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		store := newStore(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := store.List(cancelled); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

// MustAdd adds movie or fails the test.
func MustAdd(t testing.TB, store catalog.Store, movie catalog.Movie) {
	t.Helper()
	if err := store.Add(context.Background(), movie); err != nil {
		t.Fatalf("Add %q: %v", movie.Title, err)
	}
}

// MustList lists the store or fails the test.
func MustList(t testing.TB, store catalog.Store) []catalog.Movie {
	t.Helper()
	movies, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return movies
}
