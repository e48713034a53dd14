package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sundry/internal/pdfx"
)

func newBpdfCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath string
		outputDir string
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "bpdf",
		Short: "Convert PDFs to markdown in chunks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.magicPDFClient()
			if err != nil {
				return err
			}
			n, err := pdfx.BatchConvert(cmd.Context(), client, pdfx.BatchOptions{
				InputPath: inputPath,
				OutputDir: outputDir,
				ChunkSize: chunkSize,
				Logger:    ctx.logger(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d chunks into %s\n", n, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "path", "p", "", "PDF file or directory of PDFs")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./output", "Directory for the chunked output")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 10, "PDFs per chunk")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func newPdfpCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "pdfp <input.pdf>",
		Short: "Extract the embedded images from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pdfx.ExtractImages(args[0], outputDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Images written to %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./pdf-pictures", "Directory for the extracted images")
	return cmd
}
