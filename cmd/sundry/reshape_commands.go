package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sundry/internal/csvkit"
	"sundry/internal/reshape"
	"sundry/internal/term"
)

func newAdconvCommand(ctx *commandContext) *cobra.Command {
	var (
		timestampColumn string
		valueColumns    []string
		targetColumn    string
		groupSize       int
	)

	cmd := &cobra.Command{
		Use:   "adconv <input.csv> <output.csv>",
		Short: "Reshape a wide CSV into (item_id, timestamp, target) rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := csvkit.ReadFile(args[0])
			if err != nil {
				return err
			}

			if timestampColumn == "" {
				if len(table.Header) == 0 {
					return fmt.Errorf("input has no header row")
				}
				timestampColumn = table.Header[0]
			}

			// Without column flags, fall back to asking; non-interactive
			// runs default to single-column mode on the last column.
			if len(valueColumns) == 0 && targetColumn == "" {
				prompter := term.NewPrompter()
				fmt.Fprintf(cmd.OutOrStdout(), "Columns: %s\n", strings.Join(table.Header, ", "))
				picked, err := prompter.String("value columns (comma-separated, empty for single-column mode)", "")
				if err != nil {
					return err
				}
				if picked != "" {
					for _, col := range strings.Split(picked, ",") {
						valueColumns = append(valueColumns, strings.TrimSpace(col))
					}
				} else {
					fallback := table.Header[len(table.Header)-1]
					targetColumn, err = prompter.String("target column", fallback)
					if err != nil {
						return err
					}
				}
			}

			rows, err := reshape.ConvertFile(args[0], args[1], reshape.LongOptions{
				TimestampColumn: timestampColumn,
				ValueColumns:    valueColumns,
				TargetColumn:    targetColumn,
				GroupSize:       groupSize,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", rows, args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&timestampColumn, "timestamp-column", "t", "", "Timestamp column (defaults to the first column)")
	cmd.Flags().StringSliceVar(&valueColumns, "value-columns", nil, "Columns that each become their own item")
	cmd.Flags().StringVar(&targetColumn, "target-column", "", "Single value column for grouped mode")
	cmd.Flags().IntVarP(&groupSize, "group-size", "g", 1, "Records per item id in grouped mode")
	return cmd
}

func newVlcCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir    string
		intervalSpec string
		lengthColumn string
	)

	cmd := &cobra.Command{
		Use:   "vlc <input.csv>",
		Short: "Split a CSV into per-bucket files by a duration column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intervals, err := csvkit.ParseIntervals(intervalSpec)
			if err != nil {
				return err
			}
			table, err := csvkit.ReadFile(args[0])
			if err != nil {
				return err
			}

			counts, err := reshape.SplitByDuration(table, lengthColumn, intervals, outputDir, ctx.logger())
			if err != nil {
				return err
			}

			buckets := make([]string, 0, len(counts))
			for bucket := range counts {
				buckets = append(buckets, bucket)
			}
			sort.Strings(buckets)
			out := cmd.OutOrStdout()
			for _, bucket := range buckets {
				fmt.Fprintf(out, "%s: %d rows\n", bucket, counts[bucket])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./classified", "Directory for the bucket CSVs")
	cmd.Flags().StringVarP(&intervalSpec, "intervals", "i", "0:60,60:180,180:360,360:720,720:2880", "Duration buckets in seconds as min:max pairs")
	cmd.Flags().StringVarP(&lengthColumn, "length-column", "l", "length", "Column holding hh:mm:ss or mm:ss durations")
	return cmd
}
