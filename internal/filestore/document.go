package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"moviedb/internal/catalog"
)

type record struct {
	Rating    float64 `json:"rating"`
	Year      int     `json:"year_of_release"`
	PosterURL string  `json:"poster_url,omitempty"`
}

// decodeDocument parses data into movies, keeping the key order of the
// "movies" object. A repeated key replaces the earlier value in place.
func decodeDocument(data []byte) ([]catalog.Movie, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc struct {
		Movies json.RawMessage `json:"movies"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	raw := bytes.TrimSpace(doc.Movies)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse movies: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse movies: expected object, got %v", tok)
	}

	var movies []catalog.Movie
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse movies: %w", err)
		}
		title, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse movies: unexpected key %v", tok)
		}
		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("parse movie %q: %w", title, err)
		}
		movie := catalog.Movie{Title: title, Year: rec.Year, Rating: rec.Rating, PosterURL: rec.PosterURL}
		if i, seen := index[title]; seen {
			movies[i] = movie
			continue
		}
		index[title] = len(movies)
		movies = append(movies, movie)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse movies: %w", err)
	}
	return movies, nil
}

// encodeDocument renders movies as an indented document in slice order.
func encodeDocument(movies []catalog.Movie) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteString(`{"movies":{`)
	for i, m := range movies {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(m.Title)
		if err != nil {
			return nil, fmt.Errorf("marshal title %q: %w", m.Title, err)
		}
		value, err := json.Marshal(record{Rating: m.Rating, Year: m.Year, PosterURL: m.PosterURL})
		if err != nil {
			return nil, fmt.Errorf("marshal movie %q: %w", m.Title, err)
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(value)
	}
	compact.WriteString(`}}`)

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
