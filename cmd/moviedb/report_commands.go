package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/logging"
	"moviedb/internal/report"
	"moviedb/internal/textutil"
)

func newHistogramCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "histogram [file]",
		Short: "Save a PNG histogram of the ratings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 1 {
				target = args[0]
			}
			return ctx.withSession(cmd, func(s *session) error {
				path, err := writeHistogram(s, target)
				if err != nil {
					return err
				}
				newPrinter(cmd.OutOrStdout()).ok("Histogram saved to %s", path)
				return nil
			})
		},
	}
}

func newWebsiteCommand(ctx *commandContext) *cobra.Command {
	var outputPath, templatePath string

	cmd := &cobra.Command{
		Use:   "website",
		Short: "Generate a static HTML page of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				path, err := writeWebsite(s, outputPath, templatePath)
				if err != nil {
					return err
				}
				newPrinter(cmd.OutOrStdout()).ok("Website was generated successfully at %s", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination HTML file (defaults to output.website_path)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Page template containing "+report.GridPlaceholder)
	return cmd
}

// writeHistogram renders the ratings to target, or to the configured path when
// target is blank, and returns the file written.
func writeHistogram(s *session, target string) (string, error) {
	path := textutil.SanitizePath(target, s.cfg.Output.HistogramPath)
	ratings, err := s.engine.Ratings(s.requestContext())
	if err != nil {
		return "", presentError(err, "")
	}
	if err := report.WriteHistogram(path, ratings, report.HistogramOptions{}); err != nil {
		return "", fmt.Errorf("write histogram: %w", err)
	}
	return path, nil
}

func writeWebsite(s *session, outputPath, templatePath string) (string, error) {
	path := s.cfg.Output.WebsitePath
	if p := strings.TrimSpace(outputPath); p != "" {
		path = p
	}
	tmpl := s.cfg.Output.WebsiteTemplate
	if t := strings.TrimSpace(templatePath); t != "" {
		tmpl = t
	}
	movies, err := s.engine.List(s.requestContext())
	if err != nil {
		return "", err
	}
	if err := report.WriteWebsite(path, tmpl, movies); err != nil {
		return "", err
	}
	s.logger.Info("website generated",
		logging.String("path", path),
		logging.Int("movies", len(movies)))
	return path, nil
}
