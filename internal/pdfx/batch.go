package pdfx

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sundry/internal/fileutil"
	"sundry/internal/services/magicpdf"
)

// CollectPDFs returns the PDF files under path. A direct file path must name
// a PDF; a directory is walked recursively.
func CollectPDFs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil, fmt.Errorf("%s is not a PDF", path)
		}
		return []string{path}, nil
	}

	var pdfs []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".pdf") {
			pdfs = append(pdfs, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	sort.Strings(pdfs)
	return pdfs, nil
}

// ChunkFiles splits files into slices of at most size entries.
func ChunkFiles(files []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	var chunks [][]string
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[start:end])
	}
	return chunks
}

// BatchOptions configures a batch conversion run.
type BatchOptions struct {
	// InputPath is a PDF file or a directory of PDFs.
	InputPath string
	OutputDir string
	ChunkSize int
	Logger    *slog.Logger
}

// BatchConvert copies the input PDFs into numbered chunk directories under
// the output dir and runs the converter over each chunk. A chunk failure is
// logged and does not stop the remaining chunks. It returns the number of
// chunks that converted cleanly.
func BatchConvert(ctx context.Context, client *magicpdf.Client, opts BatchOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 10
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	pdfs, err := CollectPDFs(opts.InputPath)
	if err != nil {
		return 0, err
	}
	if len(pdfs) == 0 {
		logger.Info("no PDF files found", "path", opts.InputPath)
		return 0, nil
	}
	logger.Info("batching PDF files", "count", len(pdfs), "chunk_size", opts.ChunkSize)

	converted := 0
	for i, chunk := range ChunkFiles(pdfs, opts.ChunkSize) {
		chunkDir := filepath.Join(opts.OutputDir, fmt.Sprintf("chunk_%d", i+1))
		if err := os.MkdirAll(chunkDir, 0o755); err != nil {
			return converted, fmt.Errorf("create chunk dir: %w", err)
		}
		for _, pdf := range chunk {
			dest := filepath.Join(chunkDir, filepath.Base(pdf))
			if err := fileutil.CopyFile(pdf, dest); err != nil {
				return converted, fmt.Errorf("copy %s: %w", pdf, err)
			}
		}

		logger.Info("converting chunk", "chunk", i+1, "files", len(chunk))
		onLine := func(line string) { logger.Debug("magic-pdf", "line", line) }
		if err := client.ConvertDir(ctx, chunkDir, opts.OutputDir, onLine); err != nil {
			logger.Error("chunk conversion failed", "chunk", i+1, "error", err)
			continue
		}
		converted++
	}
	return converted, nil
}
