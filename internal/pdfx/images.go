// Package pdfx extracts content from PDF files and batches them through the
// magic-pdf converter.
package pdfx

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ExtractImages pulls the embedded images out of a PDF into the output
// directory, named by page and image index.
func ExtractImages(inputPath, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := api.ExtractImagesFile(inputPath, outputDir, nil, nil); err != nil {
		return fmt.Errorf("extract images from %s: %w", inputPath, err)
	}
	return nil
}
