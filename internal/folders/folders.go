// Package folders finds similarly named sibling folders and merges their
// contents.
package folders

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"sundry/internal/fileutil"
	"sundry/internal/textutil"
)

var (
	roundBracketRe  = regexp.MustCompile(`\(\D*\d*\D+\d*\D*\)`)
	squareBracketRe = regexp.MustCompile(`\[\D*\d*\D+\d*\D*]`)
	curlyBracketRe  = regexp.MustCompile(`\{\D*\d*\D+\d*\D*}`)
	uidRe           = regexp.MustCompile(`\d{6,}`)
)

// StripBrackets removes (...), [...] and {...} groups that contain at least
// one non-digit, leaving purely numeric groups alone.
func StripBrackets(name string) string {
	name = squareBracketRe.ReplaceAllString(name, "")
	name = curlyBracketRe.ReplaceAllString(name, "")
	return roundBracketRe.ReplaceAllString(name, "")
}

// UID extracts the first run of six or more digits, treated as a shared
// numeric identity between folder names.
func UID(name string) (int, bool) {
	m := uidRe.FindString(name)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Similarity scores two folder names in [0, 1]. Matching UIDs short-circuit
// to 1; otherwise the better of the raw and bracket-stripped edit similarity
// wins.
func Similarity(src, dst string) float64 {
	if srcUID, ok := UID(src); ok {
		if dstUID, ok := UID(dst); ok && srcUID == dstUID {
			return 1
		}
	}
	score := textutil.Similarity(src, dst)
	if stripped := textutil.Similarity(StripBrackets(src), dst); stripped > score {
		score = stripped
	}
	return score
}

// Match is one candidate destination with its percent score.
type Match struct {
	Name  string
	Score int
}

// FindMatches scores src against every candidate and returns those at or
// above the threshold, best first.
func FindMatches(src string, candidates []string, threshold float64) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match{Name: c, Score: int(Similarity(src, c) * 100)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	cut := int(threshold * 100)
	for i, m := range matches {
		if m.Score < cut {
			return matches[:i]
		}
	}
	return matches
}

// MergeInto moves every immediate child of srcDir into dstDir, skipping
// children that already exist there, then removes srcDir when it ends up
// empty.
func MergeInto(srcDir, dstDir string) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, entry.Name())
		if _, err := os.Lstat(dst); err == nil {
			continue
		}
		if err := fileutil.MoveFile(src, dst); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
	}

	empty, err := fileutil.IsDirEmpty(srcDir)
	if err != nil {
		return err
	}
	if empty {
		return os.Remove(srcDir)
	}
	return nil
}
