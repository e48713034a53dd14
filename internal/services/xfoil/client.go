package xfoil

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sundry/internal/execx"
)

// Executor abstracts command execution for testability.
type Executor = execx.Executor

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds each XFoil invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithWorkers sets how many XFoil processes may run concurrently.
func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Client drives the XFoil executable through its stdin command interface.
type Client struct {
	binary  string
	timeout time.Duration
	workers int
	exec    Executor
}

// New constructs an XFoil client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("xfoil binary required")
	}
	client := &Client{
		binary:  binary,
		workers: 1,
		exec:    execx.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SweepRequest describes an angle-of-attack sweep for one airfoil.
type SweepRequest struct {
	// NACA is a 4-digit airfoil designation. Exactly one of NACA and DatFile
	// must be set.
	NACA    string
	DatFile string
	// Reynolds enables a viscous calculation when positive.
	Reynolds int
	MinAoA   float64
	MaxAoA   float64
	AoAStep  float64
	// PolarDir receives one polar file per angle. Existing polar files are
	// parsed instead of re-running XFoil, so an interrupted sweep resumes.
	PolarDir string
}

func (r SweepRequest) validate() error {
	if (r.NACA == "") == (r.DatFile == "") {
		return errors.New("exactly one of a NACA code or a dat file is required")
	}
	if r.AoAStep <= 0 {
		return errors.New("aoa step must be positive")
	}
	if r.MaxAoA < r.MinAoA {
		return errors.New("max aoa below min aoa")
	}
	if strings.TrimSpace(r.PolarDir) == "" {
		return errors.New("polar directory required")
	}
	return nil
}

func (r SweepRequest) airfoilName() string {
	if r.NACA != "" {
		return r.NACA
	}
	base := filepath.Base(r.DatFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Angles expands the request into the concrete angle sequence.
func (r SweepRequest) Angles() []float64 {
	steps := int(math.Ceil((r.MaxAoA - r.MinAoA) / r.AoAStep))
	angles := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		angles = append(angles, r.MinAoA+float64(i)*r.AoAStep)
	}
	return angles
}

// Sweep runs XFoil once per angle and returns one result per angle in
// ascending angle order. Angles for which XFoil produced no polar row come
// back with Valid unset. The progress callback, when non-nil, is invoked
// after each completed angle.
func (c *Client) Sweep(ctx context.Context, req SweepRequest, progress func(done, total int)) ([]Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(req.PolarDir, 0o755); err != nil {
		return nil, fmt.Errorf("create polar directory: %w", err)
	}

	angles := req.Angles()
	results := make([]Result, len(angles))

	var mu sync.Mutex
	done := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers)
	for i, angle := range angles {
		group.Go(func() error {
			result, err := c.solveAngle(groupCtx, req, angle)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = result
			done++
			if progress != nil {
				progress(done, len(angles))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) solveAngle(ctx context.Context, req SweepRequest, angle float64) (Result, error) {
	polarPath := filepath.Join(req.PolarDir, fmt.Sprintf("%s_%.2f.dat", req.airfoilName(), angle))

	if _, err := os.Stat(polarPath); errors.Is(err, os.ErrNotExist) {
		runCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		script := commandScript(req, angle, polarPath)
		err := c.exec.Run(runCtx, execx.Spec{
			Binary: c.binary,
			Stdin:  strings.NewReader(script),
		}, func(string) {})
		// XFoil exits non-zero on unconverged points; the polar file decides.
		if err != nil && runCtx.Err() != nil {
			return Result{}, fmt.Errorf("xfoil aoa %.2f: %w", angle, runCtx.Err())
		}
	} else if err != nil {
		return Result{}, fmt.Errorf("stat polar file: %w", err)
	}

	table, err := ParsePolarFile(polarPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{AoA: angle}, nil
		}
		return Result{}, err
	}
	return table.At(angle), nil
}

// commandScript builds the stdin sequence for one XFoil run: disable
// plotting, select the airfoil, enter OPER, set viscous mode, accumulate a
// polar, solve the angle, and quit.
func commandScript(req SweepRequest, angle float64, polarPath string) string {
	lines := []string{"plop", "G", ""}
	if req.NACA != "" {
		lines = append(lines, "naca "+req.NACA)
	} else {
		lines = append(lines, "load "+req.DatFile, "")
	}
	lines = append(lines, "oper")
	if req.Reynolds > 0 {
		lines = append(lines, fmt.Sprintf("v %d", req.Reynolds))
	}
	lines = append(lines, "pacc", polarPath, "")
	lines = append(lines, fmt.Sprintf("a %g", angle))
	lines = append(lines, "", "quit")
	return strings.Join(lines, "\n") + "\n"
}

// BestLiftDrag returns the valid result with the highest lift-to-drag ratio.
func BestLiftDrag(results []Result) (Result, bool) {
	best := Result{}
	found := false
	for _, r := range results {
		if !r.Valid {
			continue
		}
		if !found || r.LiftDrag() > best.LiftDrag() {
			best = r
			found = true
		}
	}
	return best, found
}

// SortByAngle orders results by ascending angle of attack.
func SortByAngle(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].AoA < results[j].AoA
	})
}
