// Package filestore persists the movie collection as a single JSON document.
//
// The document maps each title to its rating, release year and optional
// poster URL under a top-level "movies" object. Key order is significant:
// titles are read back in document order and written in collection order.
// Every mutation rewrites the whole document through a temp file and rename,
// and an advisory lock beside the data file keeps a second process from
// opening the same collection.
package filestore
