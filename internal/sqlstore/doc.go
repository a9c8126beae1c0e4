// Package sqlstore persists the movie collection in a SQLite database.
//
// Titles are unique at the schema level, so duplicate detection and the
// not-found checks for delete and update each happen inside a single
// statement. Records list in row id order, which is insertion order.
// Statements that hit SQLITE_BUSY are retried with a short backoff.
package sqlstore
