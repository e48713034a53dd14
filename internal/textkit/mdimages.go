package textkit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

var imageRefRe = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)

// RenumberOptions configures markdown image renumbering.
type RenumberOptions struct {
	// ParentDir holds one subdirectory per document, each with a single
	// .md file and an images/ directory.
	ParentDir string
	// Start is the first number assigned to a renamed image.
	Start   int
	Workers int
	Logger  *slog.Logger
}

// RenumberImages renames the images referenced by each document to
// sequential numbers and rewrites the markdown links to match.
// Subdirectories are processed concurrently; a failing directory is logged
// and does not stop the others.
func RenumberImages(opts RenumberOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Start <= 0 {
		opts.Start = 1
	}

	entries, err := os.ReadDir(opts.ParentDir)
	if err != nil {
		return fmt.Errorf("read parent dir: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(workerLimit(opts.Workers))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(opts.ParentDir, entry.Name())
		g.Go(func() error {
			if err := renumberOne(dir, opts.Start, logger); err != nil {
				logger.Error("renumber failed", "dir", dir, "error", err)
				return nil
			}
			logger.Info("renumbered", "dir", dir)
			return nil
		})
	}
	return g.Wait()
}

func renumberOne(dir string, start int, logger *slog.Logger) error {
	mdFile, imagesDir, err := validateDocumentDir(dir)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(mdFile)
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}

	pathMap, err := renameReferencedImages(string(content), dir, imagesDir, start, logger)
	if err != nil {
		return err
	}

	updated := imageRefRe.ReplaceAllStringFunc(string(content), func(match string) string {
		groups := imageRefRe.FindStringSubmatch(match)
		if newPath, ok := pathMap[groups[2]]; ok {
			return fmt.Sprintf("![%s](%s)", groups[1], newPath)
		}
		return match
	})
	if err := os.WriteFile(mdFile, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// validateDocumentDir requires exactly one .md file and an images/
// subdirectory.
func validateDocumentDir(dir string) (string, string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("read dir: %w", err)
	}
	var mdFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			mdFiles = append(mdFiles, filepath.Join(dir, entry.Name()))
		}
	}
	switch len(mdFiles) {
	case 0:
		return "", "", fmt.Errorf("no .md file found")
	case 1:
	default:
		return "", "", fmt.Errorf("multiple .md files found")
	}

	imagesDir := filepath.Join(dir, "images")
	if info, err := os.Stat(imagesDir); err != nil || !info.IsDir() {
		return "", "", fmt.Errorf("images directory not found")
	}
	return mdFiles[0], imagesDir, nil
}

// renameReferencedImages renames each referenced images/ file to a
// sequential number, skipping numbers already taken on disk, and returns the
// old-to-new reference map.
func renameReferencedImages(content, baseDir, imagesDir string, start int, logger *slog.Logger) (map[string]string, error) {
	pathMap := make(map[string]string)
	for _, groups := range imageRefRe.FindAllStringSubmatch(content, -1) {
		ref := groups[2]
		if !strings.HasPrefix(ref, "images/") {
			continue
		}
		if _, done := pathMap[ref]; done {
			continue
		}

		oldPath := filepath.Join(baseDir, filepath.FromSlash(ref))
		if _, err := os.Stat(oldPath); err != nil {
			logger.Warn("referenced image missing", "path", oldPath)
			continue
		}

		ext := strings.TrimPrefix(filepath.Ext(oldPath), ".")
		number := start + len(pathMap)
		newName := fmt.Sprintf("%d.%s", number, ext)
		newPath := filepath.Join(imagesDir, newName)
		for {
			if _, err := os.Stat(newPath); os.IsNotExist(err) {
				break
			}
			number++
			newName = fmt.Sprintf("%d.%s", number, ext)
			newPath = filepath.Join(imagesDir, newName)
		}

		if err := os.Rename(oldPath, newPath); err != nil {
			return nil, fmt.Errorf("rename %s: %w", oldPath, err)
		}
		pathMap[ref] = "images/" + newName
	}
	return pathMap, nil
}
