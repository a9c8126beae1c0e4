package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseRating parses a user-entered rating. Any finite real number is
// accepted.
func ParseRating(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !isFinite(value) {
		return 0, Wrap(ErrInvalidInput, "parse rating", fmt.Sprintf("%q is not a number", trimmed), nil)
	}
	return value, nil
}

// ParseYear parses a user-entered release year.
func ParseYear(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, Wrap(ErrInvalidInput, "parse year", fmt.Sprintf("%q is not a whole number", trimmed), nil)
	}
	return value, nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
