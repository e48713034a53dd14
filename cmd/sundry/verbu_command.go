package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sundry/internal/verbump"
)

func newVerbuCommand(ctx *commandContext) *cobra.Command {
	var (
		level     int
		release   bool
		gitAware  bool
		watchSpec string
	)

	cmd := &cobra.Command{
		Use:   "verbu [project|glob ...]",
		Short: "Bump project.version in pyproject.toml across projects",
		Long: "Bumps project.version in every matched project directory. Level 0 advances " +
			"the dev pre-release, 1 the patch, 2 the minor, 3 the major component. " +
			"With --release the result drops pre-release and build metadata.",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 {
				patterns = []string{"."}
			}

			opts := verbump.RunOptions{
				Patterns: patterns,
				Level:    level,
				Release:  release,
				GitAware: gitAware,
				Logger:   ctx.logger(),
			}
			if gitAware {
				git, err := ctx.gitClient()
				if err != nil {
					return err
				}
				opts.Git = git
				for _, ext := range strings.Split(watchSpec, ",") {
					if ext = strings.TrimSpace(ext); ext != "" {
						opts.WatchExtensions = append(opts.WatchExtensions, ext)
					}
				}
			}

			results, err := verbump.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				if res.Skipped {
					fmt.Fprintf(out, "%s: skipped (%s)\n", res.Dir, res.Reason)
					continue
				}
				fmt.Fprintf(out, "%s: %s -> %s\n", res.Dir, res.Old, res.New)
			}
			return nil
		},
	}

	cmd.Flags().CountVarP(&level, "increment", "i", "Bump level: none=dev, -i=patch, -ii=minor, -iii=major")
	cmd.Flags().BoolVarP(&release, "release", "r", false, "Strip pre-release and build metadata")
	cmd.Flags().BoolVarP(&gitAware, "git-aware", "g", false, "Bump only projects with pending git changes")
	cmd.Flags().StringVarP(&watchSpec, "watch-extensions", "w", "py,rs", "Extensions that count as changes in git-aware mode")
	return cmd
}
