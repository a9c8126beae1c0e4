package catalog

import (
	"context"
	"fmt"
	"sort"
)

// Stats computes mean, median, max and min rating over a fresh snapshot.
// Best and Worst list every title tied at the max and min, in store order.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	movies, err := e.snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	if len(movies) == 0 {
		return Stats{}, Wrap(ErrEmptyCollection, "stats", "no movies to summarize", nil)
	}

	ratings := make([]float64, len(movies))
	var sum float64
	maxRating, minRating := movies[0].Rating, movies[0].Rating
	for i, m := range movies {
		ratings[i] = m.Rating
		sum += m.Rating
		if m.Rating > maxRating {
			maxRating = m.Rating
		}
		if m.Rating < minRating {
			minRating = m.Rating
		}
	}

	stats := Stats{
		Count:  len(movies),
		Mean:   sum / float64(len(movies)),
		Median: median(ratings),
		Max:    maxRating,
		Min:    minRating,
	}
	// Floating-point summation can drift a ulp past the extremes.
	stats.Mean = clamp(stats.Mean, minRating, maxRating)

	for _, m := range movies {
		if m.Rating == maxRating {
			stats.Best = append(stats.Best, m.Title)
		}
		if m.Rating == minRating {
			stats.Worst = append(stats.Worst, m.Title)
		}
	}
	return stats, nil
}

// Ratings returns every rating in the snapshot, for histogram rendering.
func (e *Engine) Ratings(ctx context.Context) ([]float64, error) {
	movies, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, Wrap(ErrEmptyCollection, "ratings", "no movies to plot", nil)
	}
	ratings := make([]float64, len(movies))
	for i, m := range movies {
		ratings[i] = m.Rating
	}
	return ratings, nil
}

// Random picks one movie uniformly at random.
func (e *Engine) Random(ctx context.Context) (Movie, error) {
	movies, err := e.snapshot(ctx)
	if err != nil {
		return Movie{}, err
	}
	if len(movies) == 0 {
		return Movie{}, Wrap(ErrEmptyCollection, "random", "no movies to choose from", nil)
	}
	return movies[e.intn(len(movies))], nil
}

// SortByRating returns the snapshot ordered by rating, highest first. Equal
// ratings keep store order.
func (e *Engine) SortByRating(ctx context.Context) ([]Movie, error) {
	movies, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating > movies[j].Rating
	})
	return movies, nil
}

// SortByYear returns the snapshot ordered by release year in the requested
// direction. Equal years keep store order either way.
func (e *Engine) SortByYear(ctx context.Context, order SortOrder) ([]Movie, error) {
	movies, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(movies, func(i, j int) bool {
		if order == Descending {
			return movies[i].Year > movies[j].Year
		}
		return movies[i].Year < movies[j].Year
	})
	return movies, nil
}

// Filter returns the movies that satisfy every supplied bound, in store
// order. Bounds are inclusive.
func (e *Engine) Filter(ctx context.Context, opts FilterOptions) ([]Movie, error) {
	if opts.StartYear != nil && opts.EndYear != nil && *opts.StartYear > *opts.EndYear {
		return nil, Wrap(ErrInvalidInput, "filter",
			fmt.Sprintf("start year %d is after end year %d", *opts.StartYear, *opts.EndYear), nil)
	}
	if opts.MinRating != nil && !isFinite(*opts.MinRating) {
		return nil, Wrap(ErrInvalidInput, "filter", "minimum rating must be a real number", nil)
	}

	movies, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if opts.matches(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (o FilterOptions) matches(m Movie) bool {
	if o.MinRating != nil && m.Rating < *o.MinRating {
		return false
	}
	if o.StartYear != nil && m.Year < *o.StartYear {
		return false
	}
	if o.EndYear != nil && m.Year > *o.EndYear {
		return false
	}
	return true
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
