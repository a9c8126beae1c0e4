package catalog_test

import (
	"testing"

	"moviedb/internal/catalog"
	"moviedb/internal/testsupport"
)

func TestMemoryStoreContract(t *testing.T) {
	testsupport.RunStoreContract(t, func(t *testing.T) catalog.Store {
		return catalog.NewMemoryStore()
	})
}

func TestNewMemoryStoreDropsLaterDuplicates(t *testing.T) {
	store := catalog.NewMemoryStore(
		catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3},
		catalog.Movie{Title: "Heat", Year: 2000, Rating: 1},
	)
	movies := testsupport.MustList(t, store)
	if len(movies) != 1 || movies[0].Year != 1995 {
		t.Fatalf("unexpected movies %+v", movies)
	}
}

func TestSeedMovies(t *testing.T) {
	seed := catalog.SeedMovies()
	if len(seed) != 10 {
		t.Fatalf("expected 10 seed movies, got %d", len(seed))
	}
	store := catalog.NewMemoryStore(seed...)
	if got := testsupport.MustList(t, store); len(got) != 10 || got[0].Title != "The Shawshank Redemption" {
		t.Fatalf("unexpected seeded store %+v", got)
	}
}
