package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"moviedb/internal/catalog"
	"moviedb/internal/fileutil"
	"moviedb/internal/logging"
)

// ErrLocked indicates another process holds the data file.
var ErrLocked = errors.New("data file is locked by another process")

// Store is a catalog.Store backed by a JSON document on disk.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	mu     sync.RWMutex
	movies []catalog.Movie
}

var _ catalog.Store = (*Store)(nil)

// Open locks path and loads the document. A missing file is an empty
// collection; the file is created on the first mutation.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("filestore: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "filestore"),
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	if err := s.load(); err != nil {
		_ = s.lock.Unlock()
		return nil, err
	}
	return s, nil
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the advisory lock.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]catalog.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Movie, len(s.movies))
	copy(out, s.movies)
	return out, nil
}

func (s *Store) Add(ctx context.Context, movie catalog.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(movie.Title) >= 0 {
		return catalog.Wrap(catalog.ErrDuplicateTitle, "add", fmt.Sprintf("%q already exists", movie.Title), nil)
	}
	next := make([]catalog.Movie, len(s.movies), len(s.movies)+1)
	copy(next, s.movies)
	next = append(next, movie)
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Debug("movie added", logging.String("title", movie.Title))
	return nil
}

func (s *Store) Delete(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(title)
	if idx < 0 {
		return catalog.Wrap(catalog.ErrNotFound, "delete", fmt.Sprintf("%q", title), nil)
	}
	next := make([]catalog.Movie, 0, len(s.movies)-1)
	next = append(next, s.movies[:idx]...)
	next = append(next, s.movies[idx+1:]...)
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Debug("movie deleted", logging.String("title", title))
	return nil
}

func (s *Store) Update(ctx context.Context, title string, rating float64, year int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(title)
	if idx < 0 {
		return catalog.Wrap(catalog.ErrNotFound, "update", fmt.Sprintf("%q", title), nil)
	}
	next := make([]catalog.Movie, len(s.movies))
	copy(next, s.movies)
	next[idx].Rating = rating
	next[idx].Year = year
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Debug("movie updated",
		logging.String("title", title),
		logging.Float64("rating", rating),
		logging.Int("year", year))
	return nil
}

// commit persists next and only then makes it the visible collection.
func (s *Store) commit(next []catalog.Movie) error {
	if err := s.save(next); err != nil {
		return fmt.Errorf("persist collection: %w", err)
	}
	s.movies = next
	return nil
}

func (s *Store) indexOf(title string) int {
	for i, m := range s.movies {
		if m.Title == title {
			return i
		}
	}
	return -1
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read data file: %w", err)
	}
	movies, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.path, err)
	}
	s.movies = movies
	s.logger.Debug("loaded collection",
		logging.Int("movie_count", len(movies)),
		logging.String("path", s.path))
	return nil
}

// save replaces the document atomically.
func (s *Store) save(movies []catalog.Movie) error {
	data, err := encodeDocument(movies)
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}
