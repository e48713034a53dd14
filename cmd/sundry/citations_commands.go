package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sundry/internal/citations"
)

func newHiveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hive <file>",
		Short: "Frequency statistics of #cite keys in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			counts := citations.Stats(string(content))
			if len(counts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No citations found")
				return nil
			}

			rows := make([][]string, 0, len(counts))
			total := 0
			for _, kc := range counts {
				rows = append(rows, []string{kc.Key, strconv.Itoa(kc.Count)})
				total += kc.Count
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Key", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d citations, %d distinct keys\n", total, len(counts))
			return nil
		},
	}
}

func newCordaCommand(ctx *commandContext) *cobra.Command {
	var (
		output  string
		inplace bool
	)

	cmd := &cobra.Command{
		Use:   "corda <file>",
		Short: "Sort keys inside each run of adjacent #cite calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !inplace && output == "" {
				return fmt.Errorf("either --output or --inplace is required")
			}
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			sorted := citations.SortAdjacent(string(content))
			target := output
			if inplace {
				target = args[0]
			}
			if err := os.WriteFile(target, []byte(sorted), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&inplace, "inplace", false, "Rewrite the input file")
	return cmd
}

func newCiklenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ciklen <file>",
		Short: "Delete #cite calls except those preceded by 等",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			pruned := citations.Prune(string(content), '等')
			if err := os.WriteFile(args[0], []byte(pruned), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned citations in %s\n", args[0])
			return nil
		},
	}
}
