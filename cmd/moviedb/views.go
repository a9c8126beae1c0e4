package main

import (
	"fmt"
	"strings"

	"moviedb/internal/catalog"
	"moviedb/internal/report"
)

func showMovies(p *printer, movies []catalog.Movie) {
	p.info("%s", movieCount(len(movies)))
	if len(movies) > 0 {
		fmt.Fprintln(p.out, renderMovieTable(movies))
	}
}

func showStats(p *printer, stats catalog.Stats) {
	p.info("Average rating: %.2f", stats.Mean)
	p.info("Median rating: %.2f", stats.Median)
	p.info("Best rating %s: %s", report.FormatRating(stats.Max), strings.Join(stats.Best, ", "))
	p.info("Worst rating %s: %s", report.FormatRating(stats.Min), strings.Join(stats.Worst, ", "))
}

func showRandom(p *printer, movie catalog.Movie) {
	p.info("Your movie for tonight: %s, it's rated %s", movie.Title, report.FormatRating(movie.Rating))
}

func showSearch(p *printer, query string, result catalog.SearchResult) {
	if result.Kind == catalog.MatchFuzzy {
		p.info("The movie %q does not exist. Did you mean:", query)
	}
	for _, match := range result.Matches {
		m := match.Movie
		p.info("%s (%d), %s", m.Title, m.Year, report.FormatRating(m.Rating))
	}
}
