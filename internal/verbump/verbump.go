// Package verbump bumps the project.version field in pyproject.toml files.
//
// Bump levels map to the -i flag count: 0 increments the dev pre-release,
// 1/2/3 increment patch/minor/major and restart the pre-release at dev0.
// Release mode strips the pre-release instead.
package verbump

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
)

// MaxLevel is the highest supported bump level (major).
const MaxLevel = 3

// Next computes the version that follows current for the given level.
func Next(current *semver.Version, level int, release bool) (*semver.Version, error) {
	if level < 0 || level > MaxLevel {
		return nil, fmt.Errorf("bump level %d out of range 0..%d", level, MaxLevel)
	}

	major, minor, patch := current.Major(), current.Minor(), current.Patch()
	switch level {
	case 1:
		patch++
	case 2:
		minor++
		patch = 0
	case 3:
		major++
		minor = 0
		patch = 0
	}

	var pre, metadata string
	switch {
	case release:
		// Release strips pre-release and build metadata.
	case level == 0:
		pre = nextDev(current.Prerelease())
		metadata = current.Metadata()
	default:
		// A numeric bump starts a fresh dev cycle.
		pre = "dev0"
	}

	return semver.New(major, minor, patch, pre, metadata), nil
}

// nextDev advances a devN pre-release. Any other pre-release, or none at
// all, restarts at dev0.
func nextDev(pre string) string {
	if rest, ok := strings.CutPrefix(pre, "dev"); ok {
		if n, err := strconv.ParseUint(rest, 10, 64); err == nil {
			return "dev" + strconv.FormatUint(n+1, 10)
		}
	}
	return "dev0"
}

type pyproject struct {
	Project struct {
		Version string `toml:"version"`
	} `toml:"project"`
}

// BumpFile rewrites the project.version value of the pyproject.toml at path,
// returning the old and new version strings. Only the version line changes;
// the rest of the file keeps its formatting.
func BumpFile(path string, level int, release bool) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}

	var manifest pyproject
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return "", "", fmt.Errorf("parse %s: %w", path, err)
	}
	if strings.TrimSpace(manifest.Project.Version) == "" {
		return "", "", fmt.Errorf("%s: project.version not found", path)
	}

	current, err := semver.NewVersion(manifest.Project.Version)
	if err != nil {
		return "", "", fmt.Errorf("%s: parse version %q: %w", path, manifest.Project.Version, err)
	}
	next, err := Next(current, level, release)
	if err != nil {
		return "", "", err
	}

	updated, err := rewriteVersion(string(data), next.String())
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", path, err)
	}
	return current.String(), next.String(), nil
}

// rewriteVersion replaces the value of the version key inside the [project]
// table, leaving every other line untouched.
func rewriteVersion(content, newVersion string) (string, error) {
	lines := strings.Split(content, "\n")
	inProject := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inProject = trimmed == "[project]"
			continue
		}
		if !inProject {
			continue
		}
		key, _, found := strings.Cut(trimmed, "=")
		if !found || strings.TrimSpace(key) != "version" {
			continue
		}
		prefix := line[:strings.Index(line, "=")+1]
		lines[i] = prefix + " " + strconv.Quote(newVersion)
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("version key not found in [project] table")
}
