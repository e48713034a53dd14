package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sundry/internal/datasplit"
	"sundry/internal/term"
)

func newYldtCommand(ctx *commandContext) *cobra.Command {
	var (
		imageDir     string
		labelDir     string
		outputDir    string
		classesFile  string
		trainRatio   float64
		noValidation bool
		dryRun       bool
		imageExt     string
	)

	cmd := &cobra.Command{
		Use:   "yldt",
		Short: "Split a YOLO dataset into train/val trees and emit data.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.logger()

			pairs, err := datasplit.CollectPairs(imageDir, labelDir, imageExt, logger)
			if err != nil {
				return err
			}
			bar := term.NewProgressBar(len(pairs), "copying pairs")

			err = datasplit.Run(datasplit.Options{
				ImageDir:     imageDir,
				LabelDir:     labelDir,
				OutputDir:    outputDir,
				ClassesFile:  classesFile,
				TrainRatio:   trainRatio,
				NoValidation: noValidation,
				DryRun:       dryRun,
				ImageExt:     imageExt,
				Workers:      ctx.workers(),
				Logger:       logger,
				Progress: func() {
					_ = bar.Add(1)
				},
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d pairs would be split into %s\n", len(pairs), outputDir)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Split %d pairs into %s\n", len(pairs), outputDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&imageDir, "image-dir", "i", "images", "Image folder path")
	cmd.Flags().StringVarP(&labelDir, "label-dir", "l", "labels", "Label folder path")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "dataset", "Output directory")
	cmd.Flags().StringVarP(&classesFile, "classes-file", "f", "classes.txt", "Classes file path")
	cmd.Flags().Float64Var(&trainRatio, "train-ratio", 0.8, "Training set ratio (0.0 ~ 1.0)")
	cmd.Flags().BoolVar(&noValidation, "no-validation", false, "Skip the validation split")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the split without writing anything")
	cmd.Flags().StringVar(&imageExt, "image-ext", "jpg", "Image file extension")
	return cmd
}
