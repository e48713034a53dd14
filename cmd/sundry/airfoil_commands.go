package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sundry/internal/airfoil"
	"sundry/internal/services/xfoil"
	"sundry/internal/term"
)

type sweepFlags struct {
	xfoilPath string
	naca      string
	datFile   string
	reynolds  int
	minAoA    float64
	maxAoA    float64
	aoaStep   float64
	polarDir  string
	workers   int
}

func (f *sweepFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.xfoilPath, "xfoil-path", "x", "", "Path to the XFoil executable (defaults to config)")
	cmd.Flags().StringVarP(&f.naca, "naca", "n", "", "4-digit NACA airfoil designation")
	cmd.Flags().StringVar(&f.datFile, "dat", "", "Airfoil coordinate .dat file (alternative to --naca)")
	cmd.Flags().IntVarP(&f.reynolds, "reynolds", "r", 1_000_000, "Reynolds number; 0 runs inviscid")
	cmd.Flags().Float64Var(&f.minAoA, "min-aoa", -5.0, "Minimum angle of attack in degrees")
	cmd.Flags().Float64Var(&f.maxAoA, "max-aoa", 15.0, "Maximum angle of attack in degrees")
	cmd.Flags().Float64Var(&f.aoaStep, "aoa-step", 0.5, "Angle of attack increment")
	cmd.Flags().StringVarP(&f.polarDir, "polar-dir", "p", "./polars", "Directory for per-angle polar files")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Concurrent XFoil processes (defaults to config)")
}

func (f *sweepFlags) request() xfoil.SweepRequest {
	return xfoil.SweepRequest{
		NACA:     f.naca,
		DatFile:  f.datFile,
		Reynolds: f.reynolds,
		MinAoA:   f.minAoA,
		MaxAoA:   f.maxAoA,
		AoAStep:  f.aoaStep,
		PolarDir: f.polarDir,
	}
}

func (f *sweepFlags) run(cmd *cobra.Command, ctx *commandContext) ([]xfoil.Result, error) {
	workers := f.workers
	if workers <= 0 {
		workers = ctx.workers()
	}
	client, err := ctx.xfoilClient(f.xfoilPath, workers)
	if err != nil {
		return nil, err
	}

	req := f.request()
	bar := term.NewProgressBar(len(req.Angles()), "sweeping")
	results, err := client.Sweep(cmd.Context(), req, func(done, total int) {
		_ = bar.Set(done)
	})
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}
	return results, nil
}

func newFfoilCommand(ctx *commandContext) *cobra.Command {
	ffoilCmd := &cobra.Command{
		Use:   "ffoil",
		Short: "Airfoil analysis through XFoil",
	}
	ffoilCmd.AddCommand(newFfoilSweepCommand(ctx))
	ffoilCmd.AddCommand(newFfoilPolarCommand(ctx))
	return ffoilCmd
}

func newFfoilSweepCommand(ctx *commandContext) *cobra.Command {
	var flags sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep an angle-of-attack range and report the best lift/drag point",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := flags.run(cmd, ctx)
			if err != nil {
				return err
			}

			best, err := airfoil.BestPoint(results)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Best angle of attack: %.2f\n", best.AoA)
			fmt.Fprintf(out, "CL: %.4f  CD: %.4f  L/D: %.2f\n", best.CL, best.CD, best.LiftDrag())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newFfoilPolarCommand(ctx *commandContext) *cobra.Command {
	var flags sweepFlags
	var output string

	cmd := &cobra.Command{
		Use:   "polar",
		Short: "Sweep an angle-of-attack range and write an aoa/cl/cd/ld CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := flags.run(cmd, ctx)
			if err != nil {
				return err
			}

			if err := airfoil.WritePolarCSV(output, results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(results), output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "polar.csv", "Output CSV path")
	return cmd
}

func newFofCommand(ctx *commandContext) *cobra.Command {
	var (
		output      string
		minLiftDrag float64
		minLift     float64
		maxDrag     float64
	)

	cmd := &cobra.Command{
		Use:   "fof <input.csv>",
		Short: "Filter airfoil scan results by lift and drag criteria",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kept, err := airfoil.FilterResults(args[0], output, airfoil.FilterCriteria{
				MinLiftDrag: minLiftDrag,
				MinLift:     minLift,
				MaxDrag:     maxDrag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Kept %d airfoils in %s\n", kept, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "filtered.csv", "Output CSV path")
	cmd.Flags().Float64Var(&minLiftDrag, "min-lift-drag-ratio", 5.0, "Minimum lift/drag ratio")
	cmd.Flags().Float64Var(&minLift, "min-lift", 0.2, "Minimum lift coefficient")
	cmd.Flags().Float64Var(&maxDrag, "max-drag", 0.15, "Maximum drag coefficient")
	return cmd
}
