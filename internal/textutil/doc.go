// Package textutil provides the text helpers behind catalog search and
// artifact naming.
//
// The primary use cases are:
//   - Folding titles to a canonical lowercase form for case-insensitive matching
//   - Scoring approximate matches with a sequence-similarity ratio
//   - Ranking close matches above a cutoff
//   - Sanitizing user-supplied file names before writing artifacts
//
// Similarity follows the Ratcliff/Obershelp measure (2*M/T over characters),
// the same scale difflib-style tooling reports, so 0.0 means nothing in
// common and 1.0 means identical.
package textutil
