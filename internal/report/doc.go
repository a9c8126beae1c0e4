// Package report renders artifacts derived from the movie collection: a PNG
// histogram of ratings and a static HTML page of movie cards.
//
// Writers go through a temp file and rename so a failed render never leaves a
// truncated artifact behind.
package report
