// Package term holds small interactive-terminal helpers shared by the CLI
// commands: TTY detection, line prompts, and progress bars that fall silent
// when output is redirected.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// IsInteractive reports whether the given file is attached to a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Prompter reads line-oriented answers from a reader, writing the prompts to
// a writer. Prompts render only when interactive; otherwise defaults are
// returned immediately.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter builds a prompter over stdin/stdout.
func NewPrompter() *Prompter {
	return &Prompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: IsInteractive(os.Stdin),
	}
}

// NewPrompterFrom builds a prompter over explicit streams, treating them as
// interactive. Used by tests and by commands that already checked the TTY.
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: true}
}

// String asks for a line of text, returning fallback on empty input or when
// not interactive.
func (p *Prompter) String(prompt, fallback string) (string, error) {
	if !p.interactive {
		return fallback, nil
	}
	if fallback != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, fallback)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return fallback, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// Int asks for an integer, re-prompting on unparseable input until the
// reader is exhausted.
func (p *Prompter) Int(prompt string, fallback int) (int, error) {
	for {
		line, err := p.String(prompt, strconv.Itoa(fallback))
		if err != nil {
			return fallback, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil {
			return n, nil
		}
		if !p.interactive {
			return fallback, nil
		}
		fmt.Fprintf(p.out, "not a number: %s\n", line)
	}
}

// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
func (p *Prompter) Confirm(prompt string, fallback bool) (bool, error) {
	def := "n"
	if fallback {
		def = "y"
	}
	line, err := p.String(prompt+" (y/n)", def)
	if err != nil {
		return fallback, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// NewProgressBar returns a progress bar writing to stderr, or a silent one
// when stderr is not a terminal.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	out := io.Writer(os.Stderr)
	if !IsInteractive(os.Stderr) {
		out = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
