package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sundry/internal/cluster"
	"sundry/internal/csvkit"
)

func newMakweiCommand(ctx *commandContext) *cobra.Command {
	makweiCmd := &cobra.Command{
		Use:   "makwei",
		Short: "Cluster-count selection for one-dimensional data",
	}
	makweiCmd.AddCommand(newMakweiScoreCommand(ctx))
	return makweiCmd
}

func newMakweiScoreCommand(ctx *commandContext) *cobra.Command {
	var (
		column      string
		sampleCount int
		startK      int
		endK        int
		normMethod  string
		seed        int64
		output      string
	)

	cmd := &cobra.Command{
		Use:   "score <input.csv>",
		Short: "Score candidate cluster counts with entropy-weighted validity indices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := csvkit.ReadFile(args[0])
			if err != nil {
				return err
			}
			values, err := table.Column(column)
			if err != nil {
				return err
			}
			data := make([]float64, 0, len(values))
			for _, raw := range values {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("parse %s value %q: %w", column, raw, err)
				}
				data = append(data, v)
			}

			report, err := cluster.Evaluate(data, cluster.EvaluateOptions{
				StartK:      startK,
				EndK:        endK,
				SampleLimit: sampleCount,
				NormMethod:  normMethod,
				Seed:        seed,
				Workers:     ctx.workers(),
			})
			if err != nil {
				return err
			}

			records := make([][]string, 0, len(report.Rows))
			bestK, bestTotal := 0, 0.0
			for _, row := range report.Rows {
				records = append(records, []string{
					strconv.Itoa(row.K),
					strconv.FormatFloat(row.Silhouette, 'g', -1, 64),
					strconv.FormatFloat(row.CalinskiHarabasz, 'g', -1, 64),
					strconv.FormatFloat(row.DaviesBouldin, 'g', -1, 64),
					strconv.FormatFloat(row.Total, 'g', -1, 64),
				})
				if bestK == 0 || row.Total > bestTotal {
					bestK, bestTotal = row.K, row.Total
				}
			}
			header := []string{"k", "silhouette", "calinski_harabasz", "davies_bouldin", "total"}
			if err := csvkit.WriteFile(output, header, records); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Index weights: S=%.3f CH=%.3f DB=%.3f\n",
				report.Weights[0], report.Weights[1], report.Weights[2])
			fmt.Fprintf(out, "Best cluster count: %d (score %.4f)\n", bestK, bestTotal)
			fmt.Fprintf(out, "Wrote scores to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "w", "wind", "CSV column holding the data")
	cmd.Flags().IntVarP(&sampleCount, "sample-count", "C", 4000, "Sample cap for the silhouette score")
	cmd.Flags().IntVarP(&startK, "start", "s", 2, "First candidate cluster count (inclusive)")
	cmd.Flags().IntVarP(&endK, "end", "e", 7, "Last candidate cluster count (exclusive)")
	cmd.Flags().StringVarP(&normMethod, "norm-method", "N", "probability", "Normalization: probability, minmax, scale, zscore")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for k-means and sampling")
	cmd.Flags().StringVarP(&output, "output", "o", "output_scores.csv", "Output CSV path")
	return cmd
}
