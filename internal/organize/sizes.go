package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sundry/internal/fileutil"
)

// EntrySize is one immediate child of a directory with its recursive size.
type EntrySize struct {
	Path  string
	Size  int64
	IsDir bool
}

// SubdirSizes measures every immediate child of root (files count too) and
// returns them largest first.
func SubdirSizes(root string) ([]EntrySize, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	sizes := make([]EntrySize, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		item := EntrySize{Path: path, IsDir: entry.IsDir()}
		if entry.IsDir() {
			size, err := fileutil.DirSize(path)
			if err != nil {
				return nil, err
			}
			item.Size = size
		} else {
			info, err := entry.Info()
			if err != nil {
				return nil, err
			}
			item.Size = info.Size()
		}
		sizes = append(sizes, item)
	}

	sort.Slice(sizes, func(i, j int) bool { return sizes[i].Size > sizes[j].Size })
	return sizes, nil
}

// LargestDir returns the biggest directory entry, if any.
func LargestDir(sizes []EntrySize) (EntrySize, bool) {
	for _, s := range sizes {
		if s.IsDir {
			return s, true
		}
	}
	return EntrySize{}, false
}
