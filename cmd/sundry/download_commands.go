package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sundry/internal/batchdl"
	"sundry/internal/downloader"
	"sundry/internal/services/bbdown"
	"sundry/internal/term"
)

func newCddCommand(ctx *commandContext) *cobra.Command {
	var (
		csvFile   string
		singleURL string
		column    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "cdd",
		Short: "Download files listed in a CSV column",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if outputDir == "" {
				outputDir = cfg.Paths.DownloadDir
			}
			client := downloader.NewClient(ctx.logger(), downloader.WithWorkers(ctx.workers()))
			if singleURL != "" {
				path, err := client.Download(cmd.Context(), singleURL, outputDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
				return nil
			}
			n, err := client.DownloadFromCSV(cmd.Context(), csvFile, column, outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d files into %s\n", n, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&csvFile, "file", "f", "", "CSV file listing the URLs")
	cmd.Flags().StringVarP(&singleURL, "url", "u", "", "Download a single URL instead")
	cmd.Flags().StringVar(&column, "column", "", "CSV column holding the URLs")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./downloads", "Destination directory")
	cmd.MarkFlagsOneRequired("file", "url")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	return cmd
}

func newAvdCommand(ctx *commandContext) *cobra.Command {
	var (
		workDir       string
		interval      int
		urlColumn     string
		titleColumn   string
		cleanFailures bool
		sel           bbdown.Selection
	)

	cmd := &cobra.Command{
		Use:   "avd <list.csv> [list.csv ...]",
		Short: "Batch download videos listed in CSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := batchdl.CollectEntries(args, urlColumn, titleColumn)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d entries\n", len(entries))

			prompter := term.NewPrompter()
			start, err := prompter.Int("start index", 1)
			if err != nil {
				return err
			}
			end, err := prompter.Int("end index", len(entries))
			if err != nil {
				return err
			}

			client, err := ctx.bbdownClient()
			if err != nil {
				return err
			}
			n, err := batchdl.Run(cmd.Context(), client, batchdl.Options{
				Entries:          entries,
				WorkDir:          workDir,
				Selection:        sel,
				Start:            start - 1,
				End:              end,
				Interval:         time.Duration(interval) * time.Second,
				CleanNumericDirs: cleanFailures,
				Logger:           ctx.logger(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d videos\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workDir, "work-dir", "w", ".", "Directory downloads land in")
	cmd.Flags().IntVarP(&interval, "interval", "i", 5, "Nominal delay between downloads in seconds")
	cmd.Flags().StringVar(&urlColumn, "url-tab", "url", "CSV column holding the URLs")
	cmd.Flags().StringVar(&titleColumn, "title-tab", "title", "CSV column holding the titles")
	cmd.Flags().BoolVar(&cleanFailures, "clean-failures", false, "Remove numeric fragment directories afterwards")
	cmd.Flags().BoolVar(&sel.VideoOnly, "video-only", false, "Fetch the video stream only")
	cmd.Flags().BoolVar(&sel.AudioOnly, "audio-only", false, "Fetch the audio stream only")
	cmd.Flags().BoolVar(&sel.SubOnly, "sub-only", false, "Fetch subtitles only")
	cmd.Flags().BoolVar(&sel.CoverOnly, "cover-only", false, "Fetch the cover image only")
	cmd.Flags().BoolVar(&sel.SkipSub, "skip-sub", false, "Skip subtitles")
	cmd.Flags().BoolVar(&sel.SkipCover, "skip-cover", false, "Skip the cover image")
	return cmd
}
