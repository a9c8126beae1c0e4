package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateTitle  = errors.New("duplicate title")
	ErrNotFound        = errors.New("movie not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyCollection = errors.New("empty collection")
	ErrNoMatch         = errors.New("no match found")
	ErrExternalLookup  = errors.New("external lookup failed")
)

// Wrap builds an error that names the operation while tagging it with marker
// for errors.Is checks. marker should be one of the sentinels above; a nil
// marker leaves the error unclassified.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	switch {
	case marker == nil && err == nil:
		return errors.New(detail)
	case marker == nil:
		return fmt.Errorf("%s: %w", detail, err)
	case err != nil:
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	default:
		return fmt.Errorf("%w: %s", marker, detail)
	}
}

// Kind returns a short classification for err, or "" for unclassified errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateTitle):
		return "duplicate_title"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrEmptyCollection):
		return "empty_collection"
	case errors.Is(err, ErrNoMatch):
		return "no_match"
	case errors.Is(err, ErrExternalLookup):
		return "external_lookup"
	default:
		return ""
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "catalog failure"
	}
	return strings.Join(parts, ": ")
}
