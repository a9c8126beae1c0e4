// Package catalog is the record-management and query engine for the movie
// collection.
//
// Store is the persistence contract every backend satisfies (memory, JSON
// document, SQLite). Engine wraps a Store: its read methods take a fresh
// snapshot per call and compute statistics, random picks, fuzzy search,
// sorts and filters; its write methods validate input before delegating to
// the Store so a rejected request never leaves a partial change behind.
//
// Failures carry one of the exported sentinel errors so callers branch with
// errors.Is and render their own messages.
package catalog
