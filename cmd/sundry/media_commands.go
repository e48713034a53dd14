package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sundry/internal/avkit"
	"sundry/internal/term"
	"sundry/internal/wavx"
)

func newArepCommand(ctx *commandContext) *cobra.Command {
	var (
		inputDir  string
		outputDir string
		bitrate   int
		rate      int
		targetExt string
	)

	cmd := &cobra.Command{
		Use:   "arep",
		Short: "Re-encode an audio tree to a uniform bitrate and format",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ffmpegClient()
			if err != nil {
				return err
			}
			n, err := avkit.ResampleTree(cmd.Context(), client, avkit.ResampleOptions{
				InputDir:    inputDir,
				OutputDir:   outputDir,
				BitrateKbps: bitrate,
				SampleRate:  rate,
				TargetExt:   targetExt,
				Workers:     ctx.workers(),
				Logger:      ctx.logger(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resampled %d files into %s\n", n, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "", "Directory holding the source audio")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./resampled", "Destination tree")
	cmd.Flags().IntVarP(&bitrate, "bitrate", "b", 320, "Target bitrate in kbps")
	cmd.Flags().IntVarP(&rate, "sample-rate", "s", 48000, "Target sample rate in Hz")
	cmd.Flags().StringVarP(&targetExt, "target-ext", "t", "mp3", "Target extension")
	_ = cmd.MarkFlagRequired("input-dir")
	return cmd
}

func newVmdCommand(ctx *commandContext) *cobra.Command {
	var (
		inputDir   string
		maxSeconds float64
		output     string
		useNVENC   bool
	)

	cmd := &cobra.Command{
		Use:   "vmd",
		Short: "Concatenate short videos into a single file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ffmpegClient()
			if err != nil {
				return err
			}
			n, err := avkit.ConcatShort(cmd.Context(), client, avkit.ConcatOptions{
				InputDir:    inputDir,
				Output:      output,
				MaxDuration: time.Duration(maxSeconds * float64(time.Second)),
				NVENC:       useNVENC,
				Logger:      ctx.logger(),
			})
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No videos under the duration cutoff")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d videos into %s\n", n, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input-dir", "d", "./", "Directory holding the videos")
	cmd.Flags().Float64VarP(&maxSeconds, "max-duration", "m", 15, "Duration cutoff in seconds")
	cmd.Flags().StringVarP(&output, "output", "o", "output.mp4", "Merged output file")
	cmd.Flags().BoolVar(&useNVENC, "use-nvenc", false, "Encode with h264_nvenc")
	return cmd
}

func newAuprCommand(ctx *commandContext) *cobra.Command {
	var thresholdDB float64

	cmd := &cobra.Command{
		Use:   "aupr <input.wav> [output.wav]",
		Short: "Strip silent stretches from a WAV file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := "./output.wav"
			if len(args) == 2 {
				output = args[1]
			}
			bar := term.NewProgressBar(-1, "writing samples")
			stats, err := wavx.StripSilence(wavx.StripOptions{
				InputPath:   args[0],
				OutputPath:  output,
				ThresholdDB: thresholdDB,
				Progress: func(written, total int) {
					bar.ChangeMax(total)
					_ = bar.Set(written)
				},
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Kept %d of %d samples across %d regions\n",
				stats.KeptSamples, stats.TotalSamples, stats.Regions)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&thresholdDB, "threshold", "t", -60.0, "Silence cutoff in dBFS")
	return cmd
}
