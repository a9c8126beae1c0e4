package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/catalog"
	"moviedb/internal/report"
)

const menuTitle = "********** My Movies Database **********"

type menuItem struct {
	label  string
	action func(*menu) error
}

// menuItems is indexed by the number the user types.
var menuItems = []menuItem{
	{label: "Exit"},
	{label: "List movies", action: (*menu).listMovies},
	{label: "Add movie", action: (*menu).addMovie},
	{label: "Delete movie", action: (*menu).deleteMovie},
	{label: "Update movie", action: (*menu).updateMovie},
	{label: "Stats", action: (*menu).stats},
	{label: "Random movie", action: (*menu).randomMovie},
	{label: "Search movie", action: (*menu).searchMovie},
	{label: "Movies sorted by rating", action: (*menu).sortByRating},
	{label: "Movies sorted by year", action: (*menu).sortByYear},
	{label: "Filter movies", action: (*menu).filterMovies},
	{label: "Create rating histogram", action: (*menu).createHistogram},
	{label: "Generate website", action: (*menu).generateWebsite},
}

type menu struct {
	s      *session
	out    *printer
	prompt *prompter
}

func newMenu(cmd *cobra.Command, s *session) *menu {
	out := cmd.OutOrStdout()
	return &menu{
		s:      s,
		out:    newPrinter(out),
		prompt: newPrompter(cmd.InOrStdin(), out),
	}
}

// run loops until the user picks 0 or input ends.
func (m *menu) run() error {
	for {
		m.render()
		answer, err := m.prompt.ask(fmt.Sprintf("Enter choice (0-%d): ", len(menuItems)-1))
		if err != nil {
			return m.finish(err)
		}
		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 0 || choice >= len(menuItems) {
			m.out.fail("Invalid choice. Please try again.")
			continue
		}
		if choice == 0 {
			return m.finish(nil)
		}

		if err := menuItems[choice].action(m); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return m.finish(err)
			}
			m.report(err)
		}
		if _, err := m.prompt.ask("\nPress ENTER to continue"); err != nil {
			return m.finish(err)
		}
	}
}

func (m *menu) render() {
	fmt.Fprintln(m.out.out)
	m.out.heading(menuTitle)
	fmt.Fprintln(m.out.out)
	fmt.Fprintln(m.out.out, "Menu:")
	for i, item := range menuItems {
		fmt.Fprintf(m.out.out, "%d. %s\n", i, item.label)
	}
	fmt.Fprintln(m.out.out)
}

func (m *menu) finish(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	m.out.info("Bye!")
	return nil
}

func (m *menu) report(err error) {
	var ue *userError
	if errors.As(err, &ue) {
		m.out.fail("%s", ue.msg)
		return
	}
	m.out.fail("%s", describeError(err, ""))
}

func (m *menu) listMovies() error {
	movies, err := m.s.engine.List(m.s.requestContext())
	if err != nil {
		return err
	}
	showMovies(m.out, movies)
	return nil
}

func (m *menu) addMovie() error {
	title, err := m.prompt.ask("Enter new movie name: ")
	if err != nil {
		return err
	}
	ctx := m.s.requestContext()
	if title == "" {
		return presentError(catalog.Wrap(catalog.ErrInvalidInput, "add", "title must not be empty", nil), title)
	}

	if m.s.engine.HasLookup() {
		movie, err := m.s.engine.AddFromLookup(ctx, title)
		if err != nil {
			return presentError(err, title)
		}
		m.out.ok("Movie %s (%d) successfully added with rating %s", movie.Title, movie.Year, report.FormatRating(movie.Rating))
		return nil
	}

	if _, err := m.s.engine.Get(ctx, title); err == nil {
		return presentError(catalog.Wrap(catalog.ErrDuplicateTitle, "add", strconv.Quote(title), nil), title)
	}
	rating, err := askParsed(m.prompt, m.out, "Enter new movie rating: ", catalog.ParseRating)
	if err != nil {
		return err
	}
	year, err := askParsed(m.prompt, m.out, "Enter new movie year: ", catalog.ParseYear)
	if err != nil {
		return err
	}
	if err := m.s.engine.Add(ctx, catalog.Movie{Title: title, Year: year, Rating: rating}); err != nil {
		return presentError(err, title)
	}
	m.out.ok("Movie %s successfully added", title)
	return nil
}

func (m *menu) deleteMovie() error {
	title, err := m.prompt.ask("Enter movie name to delete: ")
	if err != nil {
		return err
	}
	if err := m.s.engine.Delete(m.s.requestContext(), title); err != nil {
		return presentError(err, title)
	}
	m.out.ok("Movie %s successfully deleted", title)
	return nil
}

func (m *menu) updateMovie() error {
	title, err := m.prompt.ask("Enter movie name: ")
	if err != nil {
		return err
	}
	ctx := m.s.requestContext()
	if _, err := m.s.engine.Get(ctx, title); err != nil {
		return presentError(err, title)
	}
	ratingText, err := m.prompt.ask("Enter new movie rating: ")
	if err != nil {
		return err
	}
	yearText, err := m.prompt.ask("Enter new movie year: ")
	if err != nil {
		return err
	}
	if err := m.s.engine.UpdateFromInput(ctx, title, ratingText, yearText); err != nil {
		return presentError(err, title)
	}
	m.out.ok("Movie %s successfully updated", title)
	return nil
}

func (m *menu) stats() error {
	stats, err := m.s.engine.Stats(m.s.requestContext())
	if err != nil {
		return presentError(err, "")
	}
	showStats(m.out, stats)
	return nil
}

func (m *menu) randomMovie() error {
	movie, err := m.s.engine.Random(m.s.requestContext())
	if err != nil {
		return presentError(err, "")
	}
	showRandom(m.out, movie)
	return nil
}

func (m *menu) searchMovie() error {
	query, err := m.prompt.ask("Enter part of movie name: ")
	if err != nil {
		return err
	}
	result, err := m.s.engine.Search(m.s.requestContext(), query)
	if err != nil {
		return presentError(err, query)
	}
	showSearch(m.out, query, result)
	return nil
}

func (m *menu) sortByRating() error {
	movies, err := m.s.engine.SortByRating(m.s.requestContext())
	if err != nil {
		return err
	}
	showMovies(m.out, movies)
	return nil
}

func (m *menu) sortByYear() error {
	var order catalog.SortOrder
	for {
		answer, err := m.prompt.ask("Do you want the latest movies first? (Y/N): ")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "y":
			order = catalog.Descending
		case "n":
			order = catalog.Ascending
		default:
			m.out.fail(`Please enter "Y" or "N".`)
			continue
		}
		break
	}
	movies, err := m.s.engine.SortByYear(m.s.requestContext(), order)
	if err != nil {
		return err
	}
	showMovies(m.out, movies)
	return nil
}

func (m *menu) filterMovies() error {
	var opts catalog.FilterOptions
	var err error
	if opts.MinRating, err = askOptional(m.prompt, m.out, "Enter minimum rating (leave blank for no minimum rating): ", catalog.ParseRating); err != nil {
		return err
	}
	if opts.StartYear, err = askOptional(m.prompt, m.out, "Enter start year (leave blank for no start year): ", catalog.ParseYear); err != nil {
		return err
	}
	if opts.EndYear, err = askOptional(m.prompt, m.out, "Enter end year (leave blank for no end year): ", catalog.ParseYear); err != nil {
		return err
	}
	movies, err := m.s.engine.Filter(m.s.requestContext(), opts)
	if err != nil {
		return presentError(err, "")
	}
	if len(movies) == 0 {
		m.out.info("No movies match the filter.")
		return nil
	}
	showMovies(m.out, movies)
	return nil
}

func (m *menu) createHistogram() error {
	answer, err := m.prompt.ask(fmt.Sprintf("Enter a file name for the histogram [%s]: ", m.s.cfg.Output.HistogramPath))
	if err != nil {
		return err
	}
	path, err := writeHistogram(m.s, answer)
	if err != nil {
		return err
	}
	m.out.ok("Histogram saved to %s", path)
	return nil
}

func (m *menu) generateWebsite() error {
	path, err := writeWebsite(m.s, "", "")
	if err != nil {
		return err
	}
	m.out.ok("Website was generated successfully at %s", path)
	return nil
}
