package textutil

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var naturalCollator = collate.New(language.Und, collate.Numeric)

// NaturalCompare orders strings so embedded numbers compare by value, giving
// "file2" < "file10".
func NaturalCompare(a, b string) int {
	return naturalCollator.CompareString(a, b)
}

// SortNatural sorts values in place using NaturalCompare.
func SortNatural(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		return NaturalCompare(values[i], values[j]) < 0
	})
}
