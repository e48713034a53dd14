// Package reshape reworks tabular CSV files: wide-to-long conversion for
// anomaly detection input, and duration-bucketed splitting.
package reshape

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"sundry/internal/csvkit"
)

// LongOptions configures a wide-to-long conversion. Exactly one of
// ValueColumns (multi-item mode) or TargetColumn (single-item mode) must be
// set.
type LongOptions struct {
	TimestampColumn string
	// ValueColumns each become their own item_id, named after the column.
	ValueColumns []string
	// TargetColumn is the single value column; rows get numeric item ids,
	// advancing every GroupSize records.
	TargetColumn string
	GroupSize    int
}

func (o LongOptions) validate() error {
	if o.TimestampColumn == "" {
		return fmt.Errorf("timestamp column required")
	}
	multi := len(o.ValueColumns) > 0
	single := o.TargetColumn != ""
	if multi == single {
		return fmt.Errorf("exactly one of value columns or target column must be set")
	}
	return nil
}

// ToLong converts a wide table into (item_id, timestamp, target) records.
func ToLong(table *csvkit.Table, opts LongOptions) ([][]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	tsIdx, err := table.ColumnIndex(opts.TimestampColumn)
	if err != nil {
		return nil, err
	}
	groupSize := opts.GroupSize
	if groupSize <= 0 {
		groupSize = 1
	}

	var out [][]string
	if len(opts.ValueColumns) > 0 {
		indices := make([]int, len(opts.ValueColumns))
		for i, col := range opts.ValueColumns {
			if col == opts.TimestampColumn {
				return nil, fmt.Errorf("value column %q is the timestamp column", col)
			}
			if indices[i], err = table.ColumnIndex(col); err != nil {
				return nil, err
			}
		}
		for _, rec := range table.Records {
			for i, idx := range indices {
				out = append(out, []string{opts.ValueColumns[i], field(rec, tsIdx), field(rec, idx)})
			}
		}
		return out, nil
	}

	targetIdx, err := table.ColumnIndex(opts.TargetColumn)
	if err != nil {
		return nil, err
	}
	for row, rec := range table.Records {
		itemID := strconv.Itoa(row / groupSize)
		out = append(out, []string{itemID, field(rec, tsIdx), field(rec, targetIdx)})
	}
	return out, nil
}

// ConvertFile runs ToLong over a CSV file and writes the long-format output.
func ConvertFile(input, output string, opts LongOptions) (int, error) {
	table, err := csvkit.ReadFile(input)
	if err != nil {
		return 0, err
	}
	records, err := ToLong(table, opts)
	if err != nil {
		return 0, err
	}
	if err := csvkit.WriteFile(output, []string{"item_id", "timestamp", "target"}, records); err != nil {
		return 0, err
	}
	return len(table.Records), nil
}

func field(rec []string, idx int) string {
	if idx < len(rec) {
		return rec[idx]
	}
	return ""
}

// SplitByDuration writes one CSV per interval bucket under outputDir, keyed
// by the parsed duration of lengthColumn. Rows outside every interval land in
// other.csv; unparseable durations are logged and skipped.
func SplitByDuration(table *csvkit.Table, lengthColumn string, intervals csvkit.Intervals, outputDir string, logger *slog.Logger) (map[string]int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	idx, err := table.ColumnIndex(lengthColumn)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][][]string)
	for _, rec := range table.Records {
		if idx >= len(rec) {
			continue
		}
		dur, err := csvkit.ParseClockDuration(rec[idx])
		if err != nil {
			logger.Warn("skipping record", "value", rec[idx], "error", err)
			continue
		}
		key := "other"
		if iv, ok := intervals.Match(int64(dur.Seconds())); ok {
			key = iv.String()
		}
		buckets[key] = append(buckets[key], rec)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	counts := make(map[string]int, len(buckets))
	for key, records := range buckets {
		path := filepath.Join(outputDir, key+".csv")
		if err := csvkit.WriteFile(path, table.Header, records); err != nil {
			return nil, err
		}
		logger.Info("bucket written", "bucket", key, "records", len(records))
		counts[key] = len(records)
	}
	return counts, nil
}
