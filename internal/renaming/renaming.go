// Package renaming renames and copies files under mapping control:
// sequential numbering with a reversible JSON map, suffix-keyed filtering,
// and structured deliverable names.
package renaming

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"sundry/internal/fileutil"
	"sundry/internal/textutil"
)

// Op is one planned rename inside a directory.
type Op struct {
	OldName string
	NewName string
}

// PlanSequential numbers the regular files of dir 1..N in natural name
// order, so "page2" keeps its slot before "page10". Extensions are kept
// unless ignoreExtension is set.
func PlanSequential(dir string, ignoreExtension bool) ([]Op, error) {
	names, err := fileutil.FileNames(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	textutil.SortNatural(names)

	ops := make([]Op, 0, len(names))
	for i, name := range names {
		newName := strconv.Itoa(i + 1)
		if ext := filepath.Ext(name); ext != "" && !ignoreExtension {
			newName += ext
		}
		ops = append(ops, Op{OldName: name, NewName: newName})
	}
	return ops, nil
}

// CheckConflicts fails when any rename target already exists, so a rename
// can never clobber a file.
func CheckConflicts(dir string, ops []Op) error {
	for _, op := range ops {
		if op.OldName == op.NewName {
			continue
		}
		if _, err := os.Lstat(filepath.Join(dir, op.NewName)); err == nil {
			return fmt.Errorf("file already exists: %s", op.NewName)
		}
	}
	return nil
}

// Apply performs the renames. Progress may be nil.
func Apply(dir string, ops []Op, progress func()) error {
	for _, op := range ops {
		if op.OldName == op.NewName {
			continue
		}
		if err := os.Rename(filepath.Join(dir, op.OldName), filepath.Join(dir, op.NewName)); err != nil {
			return fmt.Errorf("rename %s: %w", op.OldName, err)
		}
		if progress != nil {
			progress()
		}
	}
	return nil
}

// SaveMap writes the old-name to new-name mapping as pretty JSON.
func SaveMap(ops []Op, path string) error {
	mapping := make(map[string]string, len(ops))
	for _, op := range ops {
		mapping[op.OldName] = op.NewName
	}
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rename map: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write rename map: %w", err)
	}
	return nil
}

// Restore renames files back using a saved map. It returns the names the map
// references that were not found. With ignoreExtension the numeric name is
// matched with or without any extension.
func Restore(dir, mapPath string, ignoreExtension bool) (missing []string, err error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("read rename map: %w", err)
	}
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parse rename map: %w", err)
	}

	type restoreOp struct {
		from string
		to   string
	}
	var ops []restoreOp
	for oldName, newName := range mapping {
		from, ok := locateRenamed(dir, newName, ignoreExtension)
		if !ok {
			missing = append(missing, newName)
			continue
		}
		ops = append(ops, restoreOp{from: from, to: filepath.Join(dir, oldName)})
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].from < ops[j].from })
	sort.Strings(missing)

	for _, op := range ops {
		if _, err := os.Lstat(op.to); err == nil {
			return missing, fmt.Errorf("file already exists: %s", filepath.Base(op.to))
		}
	}
	for _, op := range ops {
		if err := os.Rename(op.from, op.to); err != nil {
			return missing, fmt.Errorf("restore %s: %w", filepath.Base(op.to), err)
		}
	}
	return missing, nil
}

func locateRenamed(dir, newName string, ignoreExtension bool) (string, bool) {
	exact := filepath.Join(dir, newName)
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, true
	}
	if !ignoreExtension {
		return "", false
	}
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, newName+".*"))
	if err != nil {
		return "", false
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			return m, true
		}
	}
	return "", false
}

// CopyMissingCounterparts copies every file in dir with suffix original that
// lacks a sibling with suffix examine into outDir, returning how many were
// copied.
func CopyMissingCounterparts(dir, original, examine, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	names, err := fileutil.FileNames(dir)
	if err != nil {
		return 0, fmt.Errorf("read dir: %w", err)
	}

	originalExt := "." + strings.TrimPrefix(strings.ToLower(original), ".")
	examineExt := "." + strings.TrimPrefix(strings.ToLower(examine), ".")

	copied := 0
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext != originalExt {
			continue
		}
		counterpart := strings.TrimSuffix(name, filepath.Ext(name)) + examineExt
		if _, err := os.Stat(filepath.Join(dir, counterpart)); err == nil {
			continue
		}
		if err := fileutil.CopyFile(filepath.Join(dir, name), filepath.Join(outDir, name)); err != nil {
			return copied, fmt.Errorf("copy %s: %w", name, err)
		}
		copied++
	}
	return copied, nil
}
