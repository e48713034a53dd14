package xfoil

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// polarHeaderLines is the number of lines XFoil writes before the data table
// in an accumulated polar file.
const polarHeaderLines = 12

// Result is one solved operating point.
type Result struct {
	AoA    float64
	CL     float64
	CD     float64
	CDp    float64
	CM     float64
	TopXtr float64
	BotXtr float64
	// Valid reports whether XFoil converged and wrote a polar row for the
	// requested angle.
	Valid bool
}

// LiftDrag returns CL/CD, or zero when CD is numerically zero.
func (r Result) LiftDrag() float64 {
	if math.Abs(r.CD) < 1e-9 {
		return 0
	}
	return r.CL / r.CD
}

// PolarTable holds every row parsed from a polar file.
type PolarTable struct {
	Rows []Result
}

// At returns the row whose angle matches aoa. A missing angle yields an
// invalid zero result carrying the requested angle.
func (t PolarTable) At(aoa float64) Result {
	for _, row := range t.Rows {
		if math.Abs(row.AoA-aoa) < 1e-6 {
			return row
		}
	}
	return Result{AoA: aoa}
}

// ParsePolarFile reads an XFoil polar accumulation file. The format is a
// fixed preamble followed by whitespace-separated rows of
// alpha CL CD CDp CM Top_Xtr Bot_Xtr.
func ParsePolarFile(path string) (PolarTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return PolarTable{}, err
	}
	defer file.Close()

	var table PolarTable
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= polarHeaderLines {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row, err := parsePolarRow(fields)
		if err != nil {
			return PolarTable{}, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return PolarTable{}, fmt.Errorf("read polar file: %w", err)
	}
	return table, nil
}

func parsePolarRow(fields []string) (Result, error) {
	if len(fields) < 7 {
		return Result{}, fmt.Errorf("expected 7 columns, got %d", len(fields))
	}
	values := make([]float64, 7)
	for i := 0; i < 7; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Result{}, fmt.Errorf("parse column %d: %w", i+1, err)
		}
		values[i] = v
	}
	return Result{
		AoA:    values[0],
		CL:     values[1],
		CD:     values[2],
		CDp:    values[3],
		CM:     values[4],
		TopXtr: values[5],
		BotXtr: values[6],
		Valid:  true,
	}, nil
}
