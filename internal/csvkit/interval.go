package csvkit

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a half-open range of seconds. Membership excludes Min and
// includes Max.
type Interval struct {
	Min int64
	Max int64
}

func (iv Interval) Contains(v int64) bool {
	return v > iv.Min && v <= iv.Max
}

func (iv Interval) String() string {
	return fmt.Sprintf("%d-%d", iv.Min, iv.Max)
}

// Intervals matches values against an ordered list of ranges.
type Intervals []Interval

// ParseIntervals reads comma-separated min:max pairs, e.g. "0:60,60:180".
func ParseIntervals(s string) (Intervals, error) {
	var out Intervals
	for _, part := range strings.Split(s, ",") {
		lo, hi, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("interval %q: want min:max", part)
		}
		min, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("interval %q: %w", part, err)
		}
		max, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("interval %q: %w", part, err)
		}
		out = append(out, Interval{Min: min, Max: max})
	}
	return out, nil
}

// Match returns the first interval containing v.
func (ivs Intervals) Match(v int64) (Interval, bool) {
	for _, iv := range ivs {
		if iv.Contains(v) {
			return iv, true
		}
	}
	return Interval{}, false
}
