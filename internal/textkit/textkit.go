// Package textkit provides batch text-file transforms: numeric-order
// concatenation, delimiter tail extraction, per-line truncation, and
// markdown marker pruning.
package textkit

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

var leadingNumberRe = regexp.MustCompile(`\d+`)

// numericKey extracts the first run of digits from a file name, defaulting
// to zero when no digits appear.
func numericKey(name string) int {
	m := leadingNumberRe.FindString(name)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// Concat joins every .txt file in dir into outputPath, ordered by the first
// number in each file name. The output file itself is excluded when it lives
// in the same directory.
func Concat(dir, outputPath string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read directory: %w", err)
	}

	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return 0, fmt.Errorf("resolve output path: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(path); err == nil && abs == absOutput {
			continue
		}
		files = append(files, path)
	}
	sort.SliceStable(files, func(i, j int) bool {
		return numericKey(filepath.Base(files[i])) < numericKey(filepath.Base(files[j]))
	})

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := out.Write(content); err != nil {
			return 0, fmt.Errorf("write output: %w", err)
		}
		if _, err := out.WriteString("\n"); err != nil {
			return 0, fmt.Errorf("write output: %w", err)
		}
	}
	return len(files), nil
}

// ExtractTails walks dir recursively, takes the text after the last
// occurrence of delimiter in each .txt file, and writes the collected tails
// to outputPath joined with ";". Files without the delimiter or with an
// empty tail are logged and skipped.
func ExtractTails(dir, delimiter, outputPath string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk directory: %w", err)
	}
	sort.Strings(paths)

	var tails []string
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		text := strings.ReplaceAll(string(content), "\n", "")
		idx := strings.LastIndex(text, delimiter)
		if idx < 0 {
			logger.Warn("no delimiter", "path", path)
			continue
		}
		tail := text[idx+len(delimiter):]
		if tail == "" {
			logger.Warn("empty tail", "path", path)
			continue
		}
		tails = append(tails, tail)
	}

	if err := os.WriteFile(outputPath, []byte(strings.Join(tails, ";")), 0o644); err != nil {
		return 0, fmt.Errorf("write output: %w", err)
	}
	return len(tails), nil
}

// StripOptions configures a per-line truncation run.
type StripOptions struct {
	InputDir  string
	OutputDir string
	// Extension without the leading dot, for example "txt".
	Extension string
	Delimiter string
	Workers   int
}

// StripAfter rewrites each matching file into the output directory with every
// line truncated at the first occurrence of the delimiter. Files are
// processed concurrently.
func StripAfter(opts StripOptions) (int, error) {
	if opts.Delimiter == "" {
		return 0, fmt.Errorf("delimiter must not be empty")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	files, err := filesWithExtension(opts.InputDir, opts.Extension)
	if err != nil {
		return 0, err
	}

	var g errgroup.Group
	g.SetLimit(workerLimit(opts.Workers))
	for _, path := range files {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			lines := strings.Split(string(content), "\n")
			for i, line := range lines {
				if pos := strings.Index(line, opts.Delimiter); pos >= 0 {
					lines[i] = line[:pos]
				}
			}
			outPath := filepath.Join(opts.OutputDir, filepath.Base(path))
			if err := os.WriteFile(outPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(files), nil
}

// PruneOptions selects which markdown markers to remove.
type PruneOptions struct {
	InputDir  string
	OutputDir string
	Extension string
	Headings  bool
	Bold      bool
	Bullets   bool
	Workers   int
}

// PruneMarkers copies matching files into the output directory with the
// selected markdown markers removed.
func PruneMarkers(opts PruneOptions) (int, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	files, err := filesWithExtension(opts.InputDir, opts.Extension)
	if err != nil {
		return 0, err
	}

	var g errgroup.Group
	g.SetLimit(workerLimit(opts.Workers))
	for _, path := range files {
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			text := string(content)
			if opts.Headings {
				text = strings.ReplaceAll(text, "### ", "")
				text = strings.ReplaceAll(text, "## ", "")
				text = strings.ReplaceAll(text, "# ", "")
			}
			if opts.Bold {
				text = strings.ReplaceAll(text, "**", "")
			}
			if opts.Bullets {
				text = strings.ReplaceAll(text, "- ", "")
			}
			outPath := filepath.Join(opts.OutputDir, filepath.Base(path))
			if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(files), nil
}

func filesWithExtension(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	suffix := "." + strings.TrimPrefix(ext, ".")
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func workerLimit(n int) int {
	if n <= 0 {
		return 4
	}
	return n
}
