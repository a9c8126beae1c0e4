package main

import (
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/catalog"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	sortCmd := &cobra.Command{
		Use:   "sort",
		Short: "List movies in sorted order",
	}
	sortCmd.AddCommand(newSortRatingCommand(ctx))
	sortCmd.AddCommand(newSortYearCommand(ctx))
	return sortCmd
}

func newSortRatingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rating",
		Short: "Sort by rating, best first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				movies, err := s.engine.SortByRating(s.requestContext())
				if err != nil {
					return err
				}
				return emitMovies(cmd, ctx, movies)
			})
		},
	}
}

func newSortYearCommand(ctx *commandContext) *cobra.Command {
	var ascending bool

	cmd := &cobra.Command{
		Use:   "year",
		Short: "Sort by release year, latest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order := catalog.Descending
			if ascending {
				order = catalog.Ascending
			}
			return ctx.withSession(cmd, func(s *session) error {
				movies, err := s.engine.SortByYear(s.requestContext(), order)
				if err != nil {
					return err
				}
				return emitMovies(cmd, ctx, movies)
			})
		},
	}

	cmd.Flags().BoolVar(&ascending, "asc", false, "Oldest movies first")
	return cmd
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var minRating, startYear, endYear string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List movies within rating and year bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildFilter(minRating, startYear, endYear)
			if err != nil {
				return presentError(err, "")
			}
			return ctx.withSession(cmd, func(s *session) error {
				movies, err := s.engine.Filter(s.requestContext(), opts)
				if err != nil {
					return presentError(err, "")
				}
				return emitMovies(cmd, ctx, movies)
			})
		},
	}

	cmd.Flags().StringVar(&minRating, "min-rating", "", "Minimum rating (inclusive)")
	cmd.Flags().StringVar(&startYear, "start-year", "", "Earliest release year (inclusive)")
	cmd.Flags().StringVar(&endYear, "end-year", "", "Latest release year (inclusive)")
	return cmd
}

// buildFilter parses optional bounds; blank values leave a bound unset.
func buildFilter(minRating, startYear, endYear string) (catalog.FilterOptions, error) {
	var opts catalog.FilterOptions
	if strings.TrimSpace(minRating) != "" {
		v, err := catalog.ParseRating(minRating)
		if err != nil {
			return opts, err
		}
		opts.MinRating = &v
	}
	if strings.TrimSpace(startYear) != "" {
		v, err := catalog.ParseYear(startYear)
		if err != nil {
			return opts, err
		}
		opts.StartYear = &v
	}
	if strings.TrimSpace(endYear) != "" {
		v, err := catalog.ParseYear(endYear)
		if err != nil {
			return opts, err
		}
		opts.EndYear = &v
	}
	return opts, nil
}

func emitMovies(cmd *cobra.Command, ctx *commandContext, movies []catalog.Movie) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, movies)
	}
	showMovies(newPrinter(cmd.OutOrStdout()), movies)
	return nil
}
