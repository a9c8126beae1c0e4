// Package logging builds the slog loggers used across moviedb.
//
// Two formats are supported: a compact console line that lifts the component
// and request id into a prefix, and JSON with ts/level/msg keys. Helpers tag
// loggers with a component name and carry the per-command request id through
// context.Context.
package logging
