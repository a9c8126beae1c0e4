package catalog

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps the collection in process memory in insertion order.
// Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	movies []Movie
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding movies in the given order. Later
// duplicates of an earlier title are dropped.
func NewMemoryStore(movies ...Movie) *MemoryStore {
	s := &MemoryStore{movies: make([]Movie, 0, len(movies))}
	seen := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.Title]; ok {
			continue
		}
		seen[m.Title] = struct{}{}
		s.movies = append(s.movies, m)
	}
	return s
}

// SeedMovies returns the starter collection used when the in-memory backend
// is seeded.
func SeedMovies() []Movie {
	return []Movie{
		{Title: "The Shawshank Redemption", Year: 1994, Rating: 9.5},
		{Title: "Pulp Fiction", Year: 1994, Rating: 8.8},
		{Title: "The Room", Year: 2000, Rating: 3.6},
		{Title: "The Godfather", Year: 1972, Rating: 9.2},
		{Title: "The Godfather: Part II", Year: 1980, Rating: 9.0},
		{Title: "The Dark Knight", Year: 2008, Rating: 9.0},
		{Title: "12 Angry Men", Year: 2000, Rating: 8.9},
		{Title: "Everything Everywhere All At Once", Year: 2014, Rating: 8.9},
		{Title: "Forrest Gump", Year: 1994, Rating: 8.8},
		{Title: "Star Wars: Episode V", Year: 2000, Rating: 8.7},
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Movie, len(s.movies))
	copy(out, s.movies)
	return out, nil
}

func (s *MemoryStore) Add(ctx context.Context, movie Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(movie.Title) >= 0 {
		return Wrap(ErrDuplicateTitle, "add", fmt.Sprintf("%q already exists", movie.Title), nil)
	}
	s.movies = append(s.movies, movie)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(title)
	if idx < 0 {
		return Wrap(ErrNotFound, "delete", fmt.Sprintf("%q", title), nil)
	}
	next := make([]Movie, 0, len(s.movies)-1)
	next = append(next, s.movies[:idx]...)
	next = append(next, s.movies[idx+1:]...)
	s.movies = next
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, title string, rating float64, year int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(title)
	if idx < 0 {
		return Wrap(ErrNotFound, "update", fmt.Sprintf("%q", title), nil)
	}
	s.movies[idx].Rating = rating
	s.movies[idx].Year = year
	return nil
}

func (s *MemoryStore) indexOf(title string) int {
	for i, m := range s.movies {
		if m.Title == title {
			return i
		}
	}
	return -1
}
