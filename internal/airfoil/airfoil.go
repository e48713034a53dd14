// Package airfoil post-processes XFoil sweep results: best-point selection,
// polar CSV export, and performance filtering of result tables.
package airfoil

import (
	"fmt"
	"strconv"

	"sundry/internal/csvkit"
	"sundry/internal/services/xfoil"
)

// BestPoint returns the converged sweep result with the highest
// lift-to-drag ratio. Results with a numerically zero drag are ignored.
func BestPoint(results []xfoil.Result) (xfoil.Result, error) {
	best := xfoil.Result{}
	found := false
	for _, r := range results {
		if !r.Valid || r.LiftDrag() == 0 {
			continue
		}
		if !found || r.LiftDrag() > best.LiftDrag() {
			best = r
			found = true
		}
	}
	if !found {
		return xfoil.Result{}, fmt.Errorf("no converged result in sweep")
	}
	return best, nil
}

// WritePolarCSV writes sweep results as aoa,cl,cd,ld rows. Unconverged
// angles are written with zero coefficients, keeping one row per angle.
func WritePolarCSV(path string, results []xfoil.Result) error {
	records := make([][]string, 0, len(results))
	for _, r := range results {
		records = append(records, []string{
			formatFloat(r.AoA),
			formatFloat(r.CL),
			formatFloat(r.CD),
			formatFloat(r.LiftDrag()),
		})
	}
	return csvkit.WriteFile(path, []string{"aoa", "cl", "cd", "ld"}, records)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FilterCriteria bounds acceptable airfoil performance.
type FilterCriteria struct {
	MinLiftDrag float64
	MinLift     float64
	MaxDrag     float64
}

// FilterResults reads an airfoil results CSV and writes the rows whose
// cl_at_best_aoa and cd_at_best_aoa columns satisfy the criteria. It returns
// the number of rows kept.
func FilterResults(inputPath, outputPath string, criteria FilterCriteria) (int, error) {
	table, err := csvkit.ReadFile(inputPath)
	if err != nil {
		return 0, err
	}
	clIdx, err := table.ColumnIndex("cl_at_best_aoa")
	if err != nil {
		return 0, err
	}
	cdIdx, err := table.ColumnIndex("cd_at_best_aoa")
	if err != nil {
		return 0, err
	}

	var kept [][]string
	for i, record := range table.Records {
		if len(record) <= clIdx || len(record) <= cdIdx {
			return 0, fmt.Errorf("row %d: too few columns", i+1)
		}
		cl, err := strconv.ParseFloat(record[clIdx], 64)
		if err != nil {
			return 0, fmt.Errorf("row %d: parse cl: %w", i+1, err)
		}
		cd, err := strconv.ParseFloat(record[cdIdx], 64)
		if err != nil {
			return 0, fmt.Errorf("row %d: parse cd: %w", i+1, err)
		}
		if cd == 0 {
			continue
		}
		if cl/cd >= criteria.MinLiftDrag && cl >= criteria.MinLift && cd <= criteria.MaxDrag {
			kept = append(kept, record)
		}
	}

	if err := csvkit.WriteFile(outputPath, table.Header, kept); err != nil {
		return 0, err
	}
	return len(kept), nil
}
