package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sundry/internal/csvkit"
	"sundry/internal/netcdfx"
	"sundry/internal/term"
)

func newNccsvCommand(ctx *commandContext) *cobra.Command {
	nccsvCmd := &cobra.Command{
		Use:   "nccsv",
		Short: "NetCDF data processing",
	}
	nccsvCmd.AddCommand(newNccsvExtractCommand(ctx))
	return nccsvCmd
}

func newNccsvExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		lat      float64
		lon      float64
		variable string
	)

	cmd := &cobra.Command{
		Use:   "extract <input> [output]",
		Short: "Extract a variable's time series at the nearest grid point to CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := "output.csv"
			if len(args) > 1 {
				output = args[1]
			}

			files, err := netcdfx.CollectInputFiles(args[0])
			if err != nil {
				return err
			}

			extractor := netcdfx.Extractor{
				Point:    netcdfx.Point{Lat: lat, Lon: lon},
				Variable: variable,
				Logger:   ctx.logger(),
			}
			bar := term.NewProgressBar(len(files), "extracting")
			samples, err := extractor.ExtractAll(files, ctx.workers(), func() {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}

			records := make([][]string, 0, len(samples))
			for _, sample := range samples {
				records = append(records, []string{
					netcdfx.Timestamp(sample.Seconds),
					fmt.Sprintf("%.2f", sample.Value),
				})
			}
			if err := csvkit.WriteFile(output, []string{"timestamp", variable}, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d samples to %s\n", len(samples), output)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&lat, "lat", "l", 0, "Latitude of the point of interest")
	cmd.Flags().Float64VarP(&lon, "lon", "L", 0, "Longitude of the point of interest")
	cmd.Flags().StringVarP(&variable, "variable", "v", "wind", "Variable to extract")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}
