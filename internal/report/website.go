package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"strings"

	"moviedb/internal/catalog"
	"moviedb/internal/fileutil"
)

// GridPlaceholder marks where movie cards are inserted into a page template.
const GridPlaceholder = "__TEMPLATE_MOVIE_GRID__"

//go:embed index_template.html
var defaultPageTemplate string

var cardTemplate = template.Must(template.New("cards").Funcs(template.FuncMap{
	"rating": FormatRating,
}).Parse(`{{range .}}<div class="movie-card">
  <h2>{{.Title}}</h2>
  <p>Year: {{.Year}}</p>
  <p>Rating: {{rating .Rating}}</p>
{{- if .PosterURL}}
  <img src="{{.PosterURL}}" alt="{{.Title}} poster" class="movie-poster">
{{- end}}
</div>
{{end}}`))

// DefaultTemplate returns the built-in page template.
func DefaultTemplate() string {
	return defaultPageTemplate
}

// FormatRating prints whole ratings with one decimal ("9.0") and others at
// their shortest exact form ("8.85").
func FormatRating(rating float64) string {
	if rating == float64(int64(rating)) {
		return strconv.FormatFloat(rating, 'f', 1, 64)
	}
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

// RenderCards renders one escaped movie-card block per movie.
func RenderCards(movies []catalog.Movie) (string, error) {
	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, movies); err != nil {
		return "", fmt.Errorf("render movie cards: %w", err)
	}
	return buf.String(), nil
}

// RenderWebsite substitutes the rendered cards for every placeholder in page.
func RenderWebsite(w io.Writer, page string, movies []catalog.Movie) error {
	cards, err := RenderCards(movies)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, strings.ReplaceAll(page, GridPlaceholder, cards)); err != nil {
		return fmt.Errorf("write website: %w", err)
	}
	return nil
}

// WriteWebsite renders movies into the page template at templatePath (or the
// built-in template when templatePath is empty) and writes it to path.
func WriteWebsite(path, templatePath string, movies []catalog.Movie) error {
	page := defaultPageTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("read website template: %w", err)
		}
		page = string(data)
	}
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return RenderWebsite(w, page, movies)
	})
}
