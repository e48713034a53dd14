// Package modkit manages Factorio-style mod directories: versioned zip
// archives named name_X.Y.Z.zip plus a mod-list.json enable list.
package modkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"sundry/internal/fileutil"
	"sundry/internal/services/sevenzip"
)

var entryNameRe = regexp.MustCompile(`^(.*)_(\d+\.\d+\.\d+)\.zip$`)

// Entry is one versioned mod archive.
type Entry struct {
	Name    string
	Version *semver.Version
	Path    string
}

// ParseEntryName splits a name_X.Y.Z.zip file name into its parts.
func ParseEntryName(fileName string) (name string, version *semver.Version, ok bool) {
	m := entryNameRe.FindStringSubmatch(fileName)
	if m == nil {
		return "", nil, false
	}
	v, err := semver.NewVersion(m[2])
	if err != nil {
		return "", nil, false
	}
	return m[1], v, true
}

// Scan lists the versioned mod archives in modsDir. Files that don't match
// the naming scheme are ignored.
func Scan(modsDir string) ([]Entry, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, fmt.Errorf("read mods dir: %w", err)
	}
	var mods []Entry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := ParseEntryName(entry.Name())
		if !ok {
			continue
		}
		mods = append(mods, Entry{
			Name:    name,
			Version: version,
			Path:    filepath.Join(modsDir, entry.Name()),
		})
	}
	return mods, nil
}

// RetainLatest keeps the highest version per mod name.
func RetainLatest(entries []Entry) map[string]Entry {
	latest := make(map[string]Entry)
	for _, e := range entries {
		if cur, ok := latest[e.Name]; !ok || e.Version.GreaterThan(cur.Version) {
			latest[e.Name] = e
		}
	}
	return latest
}

// Manager runs mod directory operations, shelling out to 7z for archive
// work.
type Manager struct {
	Archiver *sevenzip.Client
	Client   *http.Client
	Logger   *slog.Logger
}

func (m *Manager) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

func (m *Manager) httpClient() *http.Client {
	if m.Client != nil {
		return m.Client
	}
	return http.DefaultClient
}

// MoveSuperseded moves every archive that is not its mod's latest version
// into oldDir. Individual move failures are logged and skipped.
func (m *Manager) MoveSuperseded(modsDir, oldDir string) ([]string, error) {
	entries, err := Scan(modsDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(oldDir, 0o755); err != nil {
		return nil, fmt.Errorf("create old mods dir: %w", err)
	}

	latest := RetainLatest(entries)
	var moved []string
	for _, e := range entries {
		if latest[e.Name].Path == e.Path {
			continue
		}
		dest := filepath.Join(oldDir, filepath.Base(e.Path))
		if err := fileutil.MoveFile(e.Path, dest); err != nil {
			m.logger().Warn("move failed", "path", e.Path, "error", err)
			continue
		}
		m.logger().Info("moved superseded mod", "name", e.Name, "version", e.Version.String())
		moved = append(moved, filepath.Base(e.Path))
	}
	return moved, nil
}

type modListFile struct {
	Mods []struct {
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
	} `json:"mods"`
}

// ReadModList parses mod-list.json into a name to enabled map.
func ReadModList(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mod list: %w", err)
	}
	var list modListFile
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse mod list: %w", err)
	}
	enabled := make(map[string]bool, len(list.Mods))
	for _, m := range list.Mods {
		enabled[m.Name] = m.Enabled
	}
	return enabled, nil
}

// Export archives mod-list.json plus every enabled mod zip into outputZip.
func (m *Manager) Export(ctx context.Context, modsDir, outputZip string, includeSettings bool) error {
	listPath := filepath.Join(modsDir, "mod-list.json")
	enabled, err := ReadModList(listPath)
	if err != nil {
		return err
	}
	entries, err := Scan(modsDir)
	if err != nil {
		return err
	}

	paths := []string{listPath}
	for _, e := range entries {
		if enabled[e.Name] {
			paths = append(paths, e.Path)
		}
	}
	if includeSettings {
		settings := filepath.Join(modsDir, "mod-settings.dat")
		if _, err := os.Stat(settings); err == nil {
			paths = append(paths, settings)
		} else {
			m.logger().Warn("mod-settings.dat not found", "dir", modsDir)
		}
	}

	m.logger().Info("exporting mods", "count", len(paths)-1, "archive", outputZip)
	return m.Archiver.Add(ctx, outputZip, paths)
}

// Import extracts a mod archive into modsDir.
func (m *Manager) Import(ctx context.Context, inputZip, modsDir string) error {
	return m.Archiver.Extract(ctx, inputZip, modsDir)
}

// Install places a mod from a local zip, a mod folder, or an URL into
// modsDir. Folders are packaged via info.json name/version; downloads take
// the file name from the final URL path.
func (m *Manager) Install(ctx context.Context, source, modsDir string) error {
	var archivePath string
	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		path, err := m.download(ctx, source, modsDir)
		if err != nil {
			return err
		}
		archivePath = path
	default:
		info, err := os.Stat(source)
		if err != nil {
			return fmt.Errorf("mod source: %w", err)
		}
		if info.IsDir() {
			path, err := m.packageFolder(ctx, source, modsDir)
			if err != nil {
				return err
			}
			archivePath = path
		} else {
			archivePath = source
		}
	}

	fileName := filepath.Base(archivePath)
	if _, _, ok := ParseEntryName(fileName); !ok {
		return fmt.Errorf("invalid mod file name: %s", fileName)
	}

	dest := filepath.Join(modsDir, fileName)
	if filepath.Clean(filepath.Dir(archivePath)) != filepath.Clean(modsDir) {
		if err := fileutil.MoveFile(archivePath, dest); err != nil {
			return fmt.Errorf("install mod: %w", err)
		}
	}
	m.logger().Info("installed mod", "file", fileName)
	return nil
}

func (m *Manager) download(ctx context.Context, url, modsDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := m.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("download mod: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download mod: status %s", resp.Status)
	}

	fileName := filepath.Base(resp.Request.URL.Path)
	if fileName == "." || fileName == "/" {
		return "", fmt.Errorf("cannot derive file name from %s", url)
	}
	dest := filepath.Join(modsDir, fileName)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create mod file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("write mod file: %w", err)
	}
	return dest, nil
}

type modInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (m *Manager) packageFolder(ctx context.Context, folder, modsDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(folder, "info.json"))
	if err != nil {
		return "", fmt.Errorf("read info.json: %w", err)
	}
	var info modInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return "", fmt.Errorf("parse info.json: %w", err)
	}
	if info.Name == "" || info.Version == "" {
		return "", fmt.Errorf("info.json missing name or version")
	}

	archive := filepath.Join(modsDir, fmt.Sprintf("%s_%s.zip", info.Name, info.Version))
	if err := m.Archiver.Add(ctx, archive, []string{folder}); err != nil {
		return "", err
	}
	return archive, nil
}
