// Package batchdl drives BBDown over URL lists collected from CSV files,
// skipping titles already on disk and pacing requests with a randomized
// delay.
package batchdl

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"sundry/internal/csvkit"
	"sundry/internal/services/bbdown"
)

// Entry pairs a download URL with the expected output title.
type Entry struct {
	URL   string
	Title string
}

// CollectEntries reads the URL and title columns from each CSV file. Missing
// files are skipped.
func CollectEntries(csvPaths []string, urlColumn, titleColumn string) ([]Entry, error) {
	var entries []Entry
	for _, path := range csvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		table, err := csvkit.ReadFile(path)
		if err != nil {
			return nil, err
		}
		urlIdx, err := table.ColumnIndex(urlColumn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		titleIdx, err := table.ColumnIndex(titleColumn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, rec := range table.Records {
			url := cell(rec, urlIdx)
			if url == "" {
				continue
			}
			entries = append(entries, Entry{URL: url, Title: cell(rec, titleIdx)})
		}
	}
	return entries, nil
}

// cell reads one field of a record, treating short rows as blank.
func cell(rec []string, idx int) string {
	if idx < len(rec) {
		return rec[idx]
	}
	return ""
}

// Options configures a batch download run.
type Options struct {
	Entries   []Entry
	WorkDir   string
	Selection bbdown.Selection
	// Start and End bound the slice of entries to process, half open.
	Start int
	End   int
	// Interval is the nominal delay between downloads. The actual pause is
	// drawn uniformly from [Interval/2, 2*Interval/3].
	Interval time.Duration
	// CleanNumericDirs removes all-digit directories from the work dir
	// afterwards, where failed downloads leave their fragments.
	CleanNumericDirs bool
	Logger           *slog.Logger
	// Sleep substitutes time.Sleep in tests.
	Sleep func(time.Duration)
	// Rand seeds the delay jitter. Nil uses the global source.
	Rand *rand.Rand
}

// Run downloads every entry in [Start, End) whose title is not already
// present in the work dir. Download failures are logged and counted, not
// fatal. It returns the number of successful downloads.
func Run(ctx context.Context, client *bbdown.Client, opts Options) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	if opts.End <= 0 || opts.End > len(opts.Entries) {
		opts.End = len(opts.Entries)
	}
	if opts.Start < 0 {
		opts.Start = 0
	}

	downloaded := 0
	for i := opts.Start; i < opts.End; i++ {
		entry := opts.Entries[i]
		logger.Info("checking entry", "index", i+1, "total", len(opts.Entries), "title", entry.Title)

		if titleExists(opts.WorkDir, entry.Title) {
			logger.Info("already downloaded", "title", entry.Title)
			continue
		}

		if err := client.Download(ctx, entry.URL, opts.WorkDir, opts.Selection); err != nil {
			if ctx.Err() != nil {
				return downloaded, ctx.Err()
			}
			logger.Error("download failed", "url", entry.URL, "error", err)
		} else {
			downloaded++
		}
		if opts.Interval > 0 && i+1 < opts.End {
			sleep(jitter(opts.Interval, opts.Rand))
		}
	}

	if opts.CleanNumericDirs {
		if err := DeleteNumericDirs(opts.WorkDir, logger); err != nil {
			return downloaded, err
		}
	}
	return downloaded, nil
}

func titleExists(workDir, title string) bool {
	if title == "" {
		return false
	}
	for _, candidate := range []string{title, title + ".mp4"} {
		if _, err := os.Stat(filepath.Join(workDir, candidate)); err == nil {
			return true
		}
	}
	return false
}

// jitter picks a pause between half and two thirds of interval.
func jitter(interval time.Duration, rng *rand.Rand) time.Duration {
	lo := interval / 2
	hi := interval * 2 / 3
	if hi <= lo {
		return lo
	}
	span := int64(hi - lo)
	if rng != nil {
		return lo + time.Duration(rng.Int63n(span+1))
	}
	return lo + time.Duration(rand.Int63n(span+1))
}

// DeleteNumericDirs removes the immediate subdirectories of dir whose names
// are all digits.
func DeleteNumericDirs(dir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || !allDigits(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		logger.Info("removing leftover directory", "path", path)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
