package execx

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Spec describes a single external command invocation.
type Spec struct {
	Binary string
	Args   []string
	// Dir is the working directory for the command. Empty means inherit.
	Dir string
	// Stdin is fed to the command when non-nil.
	Stdin io.Reader
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, spec Spec, onLine func(string)) error
}

// CommandExecutor runs commands via os/exec, forwarding stdout and stderr
// line by line to the callback. Lines go to stderr when no callback is set.
type CommandExecutor struct{}

func (CommandExecutor) Run(ctx context.Context, spec Spec, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, spec.Binary, spec.Args...) //nolint:gosec
	cmd.Dir = spec.Dir
	cmd.Stdin = spec.Stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", spec.Binary, err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	// Both scanner goroutines call the callback; serialize so callbacks
	// may aggregate into shared state.
	var mu sync.Mutex
	forward := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		if onLine != nil {
			onLine(line)
			return
		}
		fmt.Fprintln(os.Stderr, line)
	}

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait %s: %w", spec.Binary, err)
	}
	return nil
}

// Output runs the command and returns its combined output as one string.
func Output(ctx context.Context, executor Executor, spec Spec) (string, error) {
	var builder strings.Builder
	err := executor.Run(ctx, spec, func(line string) {
		builder.WriteString(line)
		builder.WriteByte('\n')
	})
	return builder.String(), err
}
