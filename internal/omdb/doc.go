// Package omdb fetches movie metadata from the Open Movie Database.
//
// A Client issues title lookups (GET ?t=<title>&apikey=<key>), normalizes the
// loosely typed payload ("N/A" ratings and posters, year ranges) into Movie
// values, and retries transient failures with exponential backoff. Requests
// are paced by a token-bucket limiter so bulk adds stay within the free-tier
// quota. Client satisfies catalog.Lookup.
package omdb
