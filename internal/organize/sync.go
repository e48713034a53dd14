package organize

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"sundry/internal/fileutil"
)

// SyncFromReference copies every reference file whose relative path also
// exists under targetDir over the target copy. It returns how many files
// were refreshed.
func SyncFromReference(targetDir, referenceDir string, workers int, progress func()) (int, error) {
	targets, err := relativeFiles(targetDir)
	if err != nil {
		return 0, err
	}
	references, err := relativeFiles(referenceDir)
	if err != nil {
		return 0, err
	}
	refSet := make(map[string]struct{}, len(references))
	for _, rel := range references {
		refSet[rel] = struct{}{}
	}

	var toCopy []string
	for _, rel := range targets {
		if _, ok := refSet[rel]; ok {
			toCopy = append(toCopy, rel)
		}
	}

	if workers <= 0 {
		workers = 1
	}
	var group errgroup.Group
	group.SetLimit(workers)
	for _, rel := range toCopy {
		group.Go(func() error {
			src := filepath.Join(referenceDir, rel)
			dst := filepath.Join(targetDir, rel)
			if err := fileutil.CopyFile(src, dst); err != nil {
				return fmt.Errorf("sync %s: %w", rel, err)
			}
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}
	return len(toCopy), nil
}

func relativeFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
