package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"sundry/internal/config"
)

// Requirement defines an external tool some command shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// FromTools builds the requirement list for the configured tool set. Every
// tool is optional: each one serves only the commands that call it.
func FromTools(tools config.Tools) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: tools.FFmpeg, Description: "arep, vmd", Optional: true},
		{Name: "FFprobe", Command: tools.FFprobe, Description: "vmd durations", Optional: true},
		{Name: "XFoil", Command: tools.XFoil, Description: "ffoil sweeps", Optional: true},
		{Name: "7-Zip", Command: tools.SevenZip, Description: "facm export/import", Optional: true},
		{Name: "magic-pdf", Command: tools.MagicPDF, Description: "bpdf", Optional: true},
		{Name: "BBDown", Command: tools.BBDown, Description: "avd", Optional: true},
		{Name: "GARbro", Command: tools.GARbro, Description: "xect (install directory)", Optional: true},
		{Name: "Git", Command: tools.Git, Description: "verbu --git-aware", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// A requirement whose command is a directory counts as available when the
// directory exists (GARbro is configured by its install directory).
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if strings.ContainsRune(cmd, os.PathSeparator) {
			if info, err := os.Stat(cmd); err == nil && info.IsDir() {
				status.Available = true
				results = append(results, status)
				continue
			}
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
