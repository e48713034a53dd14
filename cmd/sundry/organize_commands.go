package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sundry/internal/organize"
	"sundry/internal/services/opener"
	"sundry/internal/term"
)

func newReduceCommand(ctx *commandContext) *cobra.Command {
	var (
		inputDir  string
		outputDir string
		depth     int
		strategy  string
	)

	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Flatten directory levels into the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := organize.ParseCollisionStrategy(strategy)
			if err != nil {
				return err
			}
			return organize.Flatten(organize.FlattenOptions{
				InputDir:  inputDir,
				OutputDir: outputDir,
				Depth:     depth,
				Strategy:  parsed,
				Logger:    ctx.logger(),
			})
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "./", "Directory whose subdirectories are flattened")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./", "Directory receiving the moved contents")
	cmd.Flags().IntVarP(&depth, "depth", "d", 1, "Directory depth to flatten from")
	cmd.Flags().StringVarP(&strategy, "collision-strategy", "s", "auto", "Collision handling: auto, override, halt")
	return cmd
}

func newPmovCommand(ctx *commandContext) *cobra.Command {
	var (
		minBucketSize int
		uidSeparator  string
	)

	cmd := &cobra.Command{
		Use:   "pmov <source> <target>",
		Short: "Pack source directories into sequential bucket directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return organize.PackIntoBuckets(organize.PackOptions{
				SourceDir:     args[0],
				TargetDir:     args[1],
				MinBucketSize: minBucketSize,
				UIDSeparator:  uidSeparator,
				Logger:        ctx.logger(),
			})
		},
	}

	cmd.Flags().IntVarP(&minBucketSize, "min-bucket-size", "m", 1000, "File count at which a bucket is flushed")
	cmd.Flags().StringVarP(&uidSeparator, "uid-separator", "u", "_", "Separator between directory name and user id")
	return cmd
}

func newCprCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpr <target> <reference>",
		Short: "Copy reference files over same-relative-path files in a target tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bar := term.NewProgressBar(-1, "syncing")
			copied, err := organize.SyncFromReference(args[0], args[1], ctx.workers(), func() {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d files\n", copied)
			return nil
		},
	}
	return cmd
}

func newSzCommand(ctx *commandContext) *cobra.Command {
	var exploreGreatest bool

	cmd := &cobra.Command{
		Use:   "sz [dir]",
		Short: "Show subfolder sizes, largest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			sizes, err := organize.SubdirSizes(root)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(sizes))
			for _, entry := range sizes {
				rows = append(rows, []string{entry.Path, humanize.Bytes(uint64(entry.Size))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Folder", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))

			if exploreGreatest {
				largest, ok := organize.LargestDir(sizes)
				if !ok {
					return fmt.Errorf("no directory found under %s", root)
				}
				client, err := opener.New("")
				if err != nil {
					return err
				}
				return client.Open(cmd.Context(), largest.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&exploreGreatest, "explore-greatest-dir", "e", false, "Open the largest directory in the file browser")
	return cmd
}

func newRplCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "rpl [dir ...]",
		Short: "Replace directories with empty same-named files",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := args
			if all {
				dirs, err := organize.CollectDirs(".", false, "")
				if err != nil {
					return err
				}
				targets = append(targets, dirs...)
			}
			if len(targets) == 0 {
				return fmt.Errorf("no directories given (pass paths or --all)")
			}
			for _, dir := range targets {
				if err := organize.ReplaceDirWithFile(dir); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced %d directories\n", len(targets))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Replace every subdirectory of the current directory")
	return cmd
}

func newRecmdCommand(ctx *commandContext) *cobra.Command {
	var (
		recursive bool
		exclude   string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "recmd <command> [args ...]",
		Short: "Run a command in every subdirectory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := organize.CollectDirs(".", recursive, exclude)
			if err != nil {
				return err
			}
			return organize.RunInDirs(cmd.Context(), dirs, organize.RunInDirsOptions{
				Command: args,
				DryRun:  dryRun,
				Workers: ctx.workers(),
				Logger:  ctx.logger(),
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recurse into nested subdirectories")
	cmd.Flags().StringVarP(&exclude, "exclude", "e", "", "Skip directories whose name contains this substring")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Print the commands without executing them")
	return cmd
}
