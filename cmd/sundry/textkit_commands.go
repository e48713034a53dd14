package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sundry/internal/textkit"
)

func newOnizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "onize [output] [dir]",
		Short: "Concatenate .txt files ordered by the first number in their names",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := "output.txt"
			dir := "./"
			if len(args) > 0 {
				output = args[0]
			}
			if len(args) > 1 {
				dir = args[1]
			}
			n, err := textkit.Concat(dir, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Concatenated %d files into %s\n", n, output)
			return nil
		},
	}
}

func newAmCommand(ctx *commandContext) *cobra.Command {
	var (
		delimiter string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "am <dir>",
		Short: "Collect the text after the last delimiter in each file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := textkit.ExtractTails(args[0], delimiter, output, ctx.logger())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d tails into %s\n", n, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "最终概述：", "Delimiter marking the summary tail")
	cmd.Flags().StringVarP(&output, "output", "o", "output.txt", "Output file path")
	return cmd
}

func newRstripCommand(ctx *commandContext) *cobra.Command {
	var (
		extension string
		outputDir string
		delimiter string
	)

	cmd := &cobra.Command{
		Use:   "rstrip [input-dir]",
		Short: "Truncate each line at a delimiter across a directory of text files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDir := "."
			if len(args) > 0 {
				inputDir = args[0]
			}
			n, err := textkit.StripAfter(textkit.StripOptions{
				InputDir:  inputDir,
				OutputDir: outputDir,
				Extension: extension,
				Delimiter: delimiter,
				Workers:   ctx.workers(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stripped %d files into %s\n", n, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&extension, "extension", "e", "txt", "File extension to process")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./striped", "Output directory")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "//", "Delimiter to truncate lines at")
	return cmd
}

func newWpruneCommand(ctx *commandContext) *cobra.Command {
	var (
		headings bool
		bold     bool
		bullets  bool
	)

	cmd := &cobra.Command{
		Use:   "wprune <input-dir> <output-dir> <ext>",
		Short: "Strip markdown markers across a directory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := textkit.PruneMarkers(textkit.PruneOptions{
				InputDir:  args[0],
				OutputDir: args[1],
				Extension: args[2],
				Headings:  headings,
				Bold:      bold,
				Bullets:   bullets,
				Workers:   ctx.workers(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d files into %s\n", n, args[1])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&headings, "remove-headings", "r", false, "Remove heading markers")
	cmd.Flags().BoolVarP(&bold, "remove-stars", "s", false, "Remove bold markers")
	cmd.Flags().BoolVarP(&bullets, "remove-hyphens", "k", false, "Remove list markers")
	return cmd
}

func newMprCommand(ctx *commandContext) *cobra.Command {
	var start int

	cmd := &cobra.Command{
		Use:   "mpr <parent-dir>",
		Short: "Renumber referenced images in per-directory markdown documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return textkit.RenumberImages(textkit.RenumberOptions{
				ParentDir: args[0],
				Start:     start,
				Workers:   ctx.workers(),
				Logger:    ctx.logger(),
			})
		},
	}

	cmd.Flags().IntVarP(&start, "start", "s", 1, "First image number")
	return cmd
}
