package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sundry/internal/imaging"
)

func newPpsCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir  string
		moveFiles  bool
		cleanEmpty bool
		ratioSpec  string
	)

	cmd := &cobra.Command{
		Use:   "pps <input-dir>",
		Short: "Classify images into aspect-ratio buckets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratios, err := imaging.ParseRatioRanges(ratioSpec)
			if err != nil {
				return err
			}
			n, err := imaging.ClassifyByAspect(imaging.ClassifyOptions{
				InputDir:   args[0],
				OutputDir:  outputDir,
				Ratios:     ratios,
				Move:       moveFiles,
				CleanEmpty: cleanEmpty,
				Workers:    ctx.workers(),
				Logger:     ctx.logger(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Classified %d images into %s\n", n, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./classified", "Directory for the ratio buckets")
	cmd.Flags().BoolVarP(&moveFiles, "move-files", "m", false, "Move images instead of copying")
	cmd.Flags().BoolVar(&cleanEmpty, "clean-empty", false, "Remove directories emptied by the run")
	cmd.Flags().StringVarP(&ratioSpec, "ratios", "r", "0:1,1:8", "Aspect ratio ranges as min:max pairs")
	return cmd
}

func newPlsCommand(ctx *commandContext) *cobra.Command {
	plsCmd := &cobra.Command{
		Use:   "pls",
		Short: "Image inspection and extraction",
	}
	plsCmd.AddCommand(newPlsIdentifyCommand(ctx))
	plsCmd.AddCommand(newPlsCheckDiffCommand(ctx))
	plsCmd.AddCommand(newPlsExtractCommand(ctx))
	plsCmd.AddCommand(newPlsSmallCommand(ctx))
	return plsCmd
}

func newPlsIdentifyCommand(ctx *commandContext) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "identify <image> [image ...]",
		Short: "Report whether images are grayscale, colorful, or transparent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				props, err := imaging.Identify(path)
				if err != nil {
					return err
				}
				kind := "colorful"
				if props.Grayscale {
					kind = "grayscale"
				} else if gray, err := imaging.IsGrayscale(path, threshold); err == nil && gray {
					kind = "grayscale"
				}
				if props.Transparent {
					kind += ", transparent"
				}
				fmt.Fprintf(out, "%s: %s\n", path, kind)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.02, "Grayscale channel-difference threshold")
	return cmd
}

func newPlsCheckDiffCommand(ctx *commandContext) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "check-diff <image>",
		Short: "Show how far an image sits from the grayscale threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			margin, err := imaging.GrayscaleMargin(args[0], threshold)
			if err != nil {
				return err
			}
			diff, err := imaging.GrayDifference(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "channel difference: %.2f\n", diff)
			fmt.Fprintf(out, "margin over threshold: %.2f\n", margin)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.02, "Grayscale channel-difference threshold")
	return cmd
}

func newPlsExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		filterType string
		inputDir   string
		outputDir  string
		threshold  float64
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Move images matching a filter into a separate directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := imaging.Extract(imaging.ExtractOptions{
				InputDir:  inputDir,
				OutputDir: outputDir,
				Filter:    imaging.Filter(filterType),
				Threshold: threshold,
				Logger:    ctx.logger(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d images\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterType, "filter-type", "f", "gsc", "Filter: gsc, col, tra, ntra")
	cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "", "Directory holding the images")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Destination (defaults next to the input)")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.02, "Grayscale channel-difference threshold")
	_ = cmd.MarkFlagRequired("input-dir")
	return cmd
}

func newPlsSmallCommand(ctx *commandContext) *cobra.Command {
	var (
		inputDir  string
		outputDir string
		sizeMB    float64
	)

	cmd := &cobra.Command{
		Use:   "small",
		Short: "Move images below a size threshold into a separate directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := imaging.ExtractSmall(imaging.SmallOptions{
				InputDir:    inputDir,
				OutputDir:   outputDir,
				SizeLimitMB: sizeMB,
				Logger:      ctx.logger(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d images\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "", "Directory holding the images")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Destination (defaults next to the input)")
	cmd.Flags().Float64VarP(&sizeMB, "size", "s", 0.2, "Exclusive size limit in megabytes")
	_ = cmd.MarkFlagRequired("input-dir")
	return cmd
}
