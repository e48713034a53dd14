package csvkit

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	longClockRe  = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})`)
	shortClockRe = regexp.MustCompile(`(\d{2}):(\d{2})`)
)

// ParseClockDuration reads a duration in hh:mm:ss or mm:ss form with
// two-digit fields. The pattern may appear anywhere inside s.
func ParseClockDuration(s string) (time.Duration, error) {
	if m := longClockRe.FindStringSubmatch(s); m != nil {
		h := mustInt(m[1])
		min := mustInt(m[2])
		sec := mustInt(m[3])
		return time.Duration(h*3600+min*60+sec) * time.Second, nil
	}
	if m := shortClockRe.FindStringSubmatch(s); m != nil {
		min := mustInt(m[1])
		sec := mustInt(m[2])
		return time.Duration(min*60+sec) * time.Second, nil
	}
	return 0, fmt.Errorf("%q is not a valid duration", s)
}

func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
