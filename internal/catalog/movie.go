package catalog

// Movie is a single catalog record. Title is the identity key.
type Movie struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Rating    float64 `json:"rating"`
	PosterURL string  `json:"poster_url,omitempty"`
}

// SortOrder selects the direction of a year sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// FilterOptions bounds a Filter call. Nil fields impose no constraint.
type FilterOptions struct {
	MinRating *float64
	StartYear *int
	EndYear   *int
}

// Stats summarizes the ratings of a snapshot.
type Stats struct {
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	Max    float64  `json:"max"`
	Min    float64  `json:"min"`
	Best   []string `json:"best"`
	Worst  []string `json:"worst"`
}

// MatchKind reports which search strategy produced a result.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
)

// Match pairs a movie with its similarity to the query.
type Match struct {
	Movie Movie   `json:"movie"`
	Score float64 `json:"score"`
}

// SearchResult holds the outcome of one Search call.
type SearchResult struct {
	Kind    MatchKind `json:"kind"`
	Matches []Match   `json:"matches"`
}
