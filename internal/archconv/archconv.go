// Package archconv converts game archives to PNG image sets by chaining
// GARbro console extraction and image conversion.
package archconv

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"sundry/internal/fileutil"
	"sundry/internal/services/garbro"
)

// passthroughExts are already browser-friendly and are copied, not
// converted.
var passthroughExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {},
}

// FindByExtension walks the root paths for files carrying the extension.
func FindByExtension(roots []string, ext string) ([]string, error) {
	suffix := "." + strings.TrimPrefix(ext, ".")
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), suffix) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// ExtractOptions configures an archive-to-PNG run.
type ExtractOptions struct {
	// Roots are searched recursively for archives.
	Roots []string
	// Extension selects the archive files, for example "dpak".
	Extension string
	OutputDir string
	Logger    *slog.Logger
	// Progress is called once per extracted archive and converted image.
	Progress func()
}

// ExtractAll unpacks every matching archive into a scratch directory under
// the output dir, converts the unpacked images to PNG, copies through files
// that are already PNG or JPEG, and removes the scratch directory. A failing
// archive or conversion aborts the run.
func ExtractAll(ctx context.Context, client *garbro.Client, opts ExtractOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	archives, err := FindByExtension(opts.Roots, opts.Extension)
	if err != nil {
		return err
	}
	if len(archives) == 0 {
		logger.Info("no archives found", "extension", opts.Extension)
		return nil
	}

	tempDir := filepath.Join(opts.OutputDir, "scratch-"+uuid.NewString())
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Info("extracting archives", "count", len(archives))
	for _, archive := range archives {
		if err := client.Extract(ctx, archive, tempDir); err != nil {
			return err
		}
		logger.Debug("extracted", "archive", archive)
		if opts.Progress != nil {
			opts.Progress()
		}
	}

	return ConvertDir(ctx, client, tempDir, opts.OutputDir, logger, opts.Progress)
}

// ConvertDir converts every non-PNG/JPEG file under sourceDir to PNG in
// outputDir and copies the passthrough images over unchanged.
func ConvertDir(ctx context.Context, client *garbro.Client, sourceDir, outputDir string, logger *slog.Logger, progress func()) error {
	if logger == nil {
		logger = slog.Default()
	}

	var raw, passthrough []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := passthroughExts[strings.ToLower(filepath.Ext(path))]; ok {
			passthrough = append(passthrough, path)
		} else {
			raw = append(raw, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", sourceDir, err)
	}
	if len(raw) == 0 && len(passthrough) == 0 {
		logger.Info("nothing to convert", "dir", sourceDir)
		return nil
	}

	for _, path := range raw {
		if err := client.ConvertToPNG(ctx, path, outputDir); err != nil {
			return err
		}
		logger.Debug("converted", "path", path)
		if progress != nil {
			progress()
		}
	}
	for _, path := range passthrough {
		if filepath.Dir(path) == outputDir {
			continue
		}
		dest := filepath.Join(outputDir, filepath.Base(path))
		if err := fileutil.CopyFile(path, dest); err != nil {
			return fmt.Errorf("copy %s: %w", path, err)
		}
	}
	return nil
}
