package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sundry/internal/mediadirs"
	"sundry/internal/term"
)

func newPamCommand(ctx *commandContext) *cobra.Command {
	pamCmd := &cobra.Command{
		Use:   "pam",
		Short: "Per-artist media directory management",
	}
	pamCmd.AddCommand(newPamAuditCommand(ctx))
	pamCmd.AddCommand(newPamEradicateCommand(ctx))
	pamCmd.AddCommand(newPamMergeCommand(ctx))
	return pamCmd
}

func newPamAuditCommand(ctx *commandContext) *cobra.Command {
	var minCount int

	cmd := &cobra.Command{
		Use:   "audit <input-dir>",
		Short: "List subdirectories holding fewer than the minimum media count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := mediadirs.Audit(args[0], minCount)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No thin directories found")
				return nil
			}
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				rows = append(rows, []string{res.Path, strconv.Itoa(res.Count)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Directory", "Media files"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minCount, "min-count", "m", 5, "Minimum media file count")
	return cmd
}

func newPamEradicateCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "eradicate <input-dir> [input-dir ...]",
		Short: "Remove non-media files, or move them aside",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := mediadirs.Eradicate(args, output, ctx.logger())
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d non-media files\n", n)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d non-media files to %s\n", n, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Move non-media files here instead of deleting them")
	return cmd
}

func newPamMergeCommand(ctx *commandContext) *cobra.Command {
	var (
		output string
		cut    bool
	)

	cmd := &cobra.Command{
		Use:   "merge <input-dir> [input-dir ...]",
		Short: "Merge media files into per-artist directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bar := term.NewProgressBar(-1, "merging")
			n, err := mediadirs.Merge(mediadirs.MergeOptions{
				InputDirs: args,
				OutputDir: output,
				Cut:       cut,
				Logger:    ctx.logger(),
				Progress: func() {
					_ = bar.Add(1)
				},
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d files into %s\n", n, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "./merged", "Output directory for merged files")
	cmd.Flags().BoolVar(&cut, "cut", false, "Move files instead of copying them")
	return cmd
}
