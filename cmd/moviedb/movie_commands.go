package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every movie in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				movies, err := s.engine.List(s.requestContext())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, movies)
				}
				showMovies(newPrinter(cmd.OutOrStdout()), movies)
				return nil
			})
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var yearText, ratingText, posterURL string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie",
		Long: "Add a movie. With an OMDb API key configured the year, rating, and poster\n" +
			"are fetched by title; pass --year and --rating to enter them by hand.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinArgs(args)
			manual := cmd.Flags().Changed("year") || cmd.Flags().Changed("rating")
			return ctx.withSession(cmd, func(s *session) error {
				reqCtx := s.requestContext()
				var movie catalog.Movie
				if s.engine.HasLookup() && !manual {
					fetched, err := s.engine.AddFromLookup(reqCtx, title)
					if err != nil {
						return presentError(err, title)
					}
					movie = fetched
				} else {
					if !cmd.Flags().Changed("year") || !cmd.Flags().Changed("rating") {
						return errors.New("--year and --rating are required when no OMDb API key is configured")
					}
					rating, err := catalog.ParseRating(ratingText)
					if err != nil {
						return presentError(err, title)
					}
					year, err := catalog.ParseYear(yearText)
					if err != nil {
						return presentError(err, title)
					}
					movie = catalog.Movie{Title: title, Year: year, Rating: rating, PosterURL: posterURL}
					if err := s.engine.Add(reqCtx, movie); err != nil {
						return presentError(err, title)
					}
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, movie)
				}
				newPrinter(cmd.OutOrStdout()).ok("Movie %s successfully added", movie.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&yearText, "year", "", "Release year")
	cmd.Flags().StringVar(&ratingText, "rating", "", "Rating")
	cmd.Flags().StringVar(&posterURL, "poster", "", "Poster image URL")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Delete a movie by exact title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinArgs(args)
			return ctx.withSession(cmd, func(s *session) error {
				if err := s.engine.Delete(s.requestContext(), title); err != nil {
					return presentError(err, title)
				}
				newPrinter(cmd.OutOrStdout()).ok("Movie %s successfully deleted", title)
				return nil
			})
		},
	}
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var yearText, ratingText string

	cmd := &cobra.Command{
		Use:   "update <title>",
		Short: "Replace the rating and year of a movie",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := joinArgs(args)
			return ctx.withSession(cmd, func(s *session) error {
				if err := s.engine.UpdateFromInput(s.requestContext(), title, ratingText, yearText); err != nil {
					return presentError(err, title)
				}
				newPrinter(cmd.OutOrStdout()).ok("Movie %s successfully updated", title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&ratingText, "rating", "", "New rating")
	cmd.Flags().StringVar(&yearText, "year", "", "New release year")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show rating statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				stats, err := s.engine.Stats(s.requestContext())
				if err != nil {
					return presentError(err, "")
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, stats)
				}
				showStats(newPrinter(cmd.OutOrStdout()), stats)
				return nil
			})
		},
	}
}

func newRandomCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Pick a random movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				movie, err := s.engine.Random(s.requestContext())
				if err != nil {
					return presentError(err, "")
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, movie)
				}
				showRandom(newPrinter(cmd.OutOrStdout()), movie)
				return nil
			})
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles, falling back to close matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinArgs(args)
			return ctx.withSession(cmd, func(s *session) error {
				result, err := s.engine.Search(s.requestContext(), query)
				if err != nil {
					return presentError(err, query)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, result)
				}
				showSearch(newPrinter(cmd.OutOrStdout()), query, result)
				return nil
			})
		},
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
