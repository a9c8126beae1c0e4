package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moviedb/internal/logging"
)

// Add validates movie and inserts it. Duplicate titles are rejected with
// ErrDuplicateTitle and the stored record is left as it was.
func (e *Engine) Add(ctx context.Context, movie Movie) error {
	ctx = ensureContext(ctx)
	movie.Title = strings.TrimSpace(movie.Title)
	movie.PosterURL = strings.TrimSpace(movie.PosterURL)
	if movie.Title == "" {
		return Wrap(ErrInvalidInput, "add", "title must not be empty", nil)
	}
	if !isFinite(movie.Rating) {
		return Wrap(ErrInvalidInput, "add", "rating must be a real number", nil)
	}

	if err := e.store.Add(ctx, movie); err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			return err
		}
		return Wrap(nil, "add", fmt.Sprintf("store %q", movie.Title), err)
	}
	e.log(ctx).Debug("movie added",
		logging.String("title", movie.Title),
		logging.Int("year", movie.Year),
		logging.Float64("rating", movie.Rating))
	return nil
}

// AddFromLookup fetches metadata for title from the configured Lookup and
// stores the result under the title the service reports.
func (e *Engine) AddFromLookup(ctx context.Context, title string) (Movie, error) {
	ctx = ensureContext(ctx)
	title = strings.TrimSpace(title)
	if title == "" {
		return Movie{}, Wrap(ErrInvalidInput, "add", "title must not be empty", nil)
	}
	if e.lookup == nil {
		return Movie{}, Wrap(ErrExternalLookup, "add", "no metadata service configured", nil)
	}

	movie, err := e.lookup.Lookup(ctx, title)
	if err != nil {
		logging.WarnWithContext(e.log(ctx), "metadata lookup failed", "lookup_failed",
			logging.String("title", title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the title spelling or the metadata service key"),
			logging.String(logging.FieldImpact, "movie was not added"))
		return Movie{}, Wrap(ErrExternalLookup, "add", fmt.Sprintf("lookup %q", title), err)
	}
	if strings.TrimSpace(movie.Title) == "" {
		movie.Title = title
	}
	if err := e.Add(ctx, movie); err != nil {
		return Movie{}, err
	}
	return movie, nil
}

// Update replaces the rating and year of an existing movie.
func (e *Engine) Update(ctx context.Context, title string, rating float64, year int) error {
	ctx = ensureContext(ctx)
	if !isFinite(rating) {
		return Wrap(ErrInvalidInput, "update", "rating must be a real number", nil)
	}
	if err := e.store.Update(ctx, title, rating, year); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return Wrap(nil, "update", fmt.Sprintf("store %q", title), err)
	}
	e.log(ctx).Debug("movie updated",
		logging.String("title", title),
		logging.Int("year", year),
		logging.Float64("rating", rating))
	return nil
}

// UpdateFromInput applies raw user input. The title must exist and both
// values must parse before anything is written, so a bad year never leaves
// a new rating behind.
func (e *Engine) UpdateFromInput(ctx context.Context, title, ratingText, yearText string) error {
	ctx = ensureContext(ctx)
	if _, err := e.find(ctx, title); err != nil {
		return err
	}
	rating, err := ParseRating(ratingText)
	if err != nil {
		return err
	}
	year, err := ParseYear(yearText)
	if err != nil {
		return err
	}
	return e.Update(ctx, title, rating, year)
}

// Delete removes a movie by exact title.
func (e *Engine) Delete(ctx context.Context, title string) error {
	ctx = ensureContext(ctx)
	if err := e.store.Delete(ctx, title); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return Wrap(nil, "delete", fmt.Sprintf("store %q", title), err)
	}
	e.log(ctx).Debug("movie deleted", logging.String("title", title))
	return nil
}

// Get returns the movie stored under the exact title.
func (e *Engine) Get(ctx context.Context, title string) (Movie, error) {
	return e.find(ctx, title)
}

func (e *Engine) find(ctx context.Context, title string) (Movie, error) {
	movies, err := e.snapshot(ctx)
	if err != nil {
		return Movie{}, err
	}
	for _, m := range movies {
		if m.Title == title {
			return m, nil
		}
	}
	return Movie{}, Wrap(ErrNotFound, "lookup", fmt.Sprintf("%q", title), nil)
}
