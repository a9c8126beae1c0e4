package catalog

import "context"

// Store persists the movie collection.
//
// Implementations must make each call atomic with respect to the whole
// collection and must report:
//   - ErrDuplicateTitle from Add when the title already exists
//   - ErrNotFound from Delete and Update when the title is absent
//
// List returns records in the backend's native order.
type Store interface {
	List(ctx context.Context) ([]Movie, error)
	Add(ctx context.Context, movie Movie) error
	Delete(ctx context.Context, title string) error
	Update(ctx context.Context, title string, rating float64, year int) error
}

// Lookup fetches movie metadata from an external service by title.
type Lookup interface {
	Lookup(ctx context.Context, title string) (Movie, error)
}
