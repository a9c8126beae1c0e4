package main

import (
	"errors"
	"fmt"
	"strings"

	"moviedb/internal/catalog"
)

// userError carries a display message while keeping the cause for errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func presentError(err error, title string) error {
	if err == nil {
		return nil
	}
	return &userError{msg: describeError(err, title), err: err}
}

// describeError maps catalog failures to the message shown to the user.
func describeError(err error, title string) string {
	switch {
	case errors.Is(err, catalog.ErrDuplicateTitle):
		return fmt.Sprintf("Movie %q already exists.", title)
	case errors.Is(err, catalog.ErrNotFound):
		return fmt.Sprintf("Movie %q doesn't exist.", title)
	case errors.Is(err, catalog.ErrInvalidInput):
		detail := strings.TrimPrefix(err.Error(), catalog.ErrInvalidInput.Error()+": ")
		return fmt.Sprintf("Invalid input: %s.", detail)
	case errors.Is(err, catalog.ErrEmptyCollection):
		return "No movies in the database."
	case errors.Is(err, catalog.ErrNoMatch):
		return "No movies matched your search."
	case errors.Is(err, catalog.ErrExternalLookup):
		return fmt.Sprintf("Failed to add movie %q. Check the title or try again later.", title)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
