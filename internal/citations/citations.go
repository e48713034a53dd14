// Package citations manipulates Typst #cite(...) references in documents:
// frequency statistics, ordering of adjacent citation runs, and pruning.
package citations

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	citeRe    = regexp.MustCompile(`#cite\(([^)]+)\)`)
	citeKeyRe = regexp.MustCompile(`#cite\(<([^>]+)>\)`)
)

// KeyCount is one citation key with its occurrence count.
type KeyCount struct {
	Key   string
	Count int
}

// Stats counts every #cite(...) occurrence, most frequent first. Ties break
// on the key so output is stable.
func Stats(content string) []KeyCount {
	counts := make(map[string]int)
	for _, m := range citeRe.FindAllStringSubmatch(content, -1) {
		counts[m[1]]++
	}
	out := make([]KeyCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, KeyCount{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SortAdjacent rewrites each run of back-to-back #cite(<key>) calls so the
// keys appear in the order each key first occurs anywhere in the document.
// Text between runs is untouched.
func SortAdjacent(content string) string {
	locs := citeKeyRe.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return content
	}

	type match struct {
		start, end int
		key        string
	}
	order := make(map[string]int)
	matches := make([]match, 0, len(locs))
	for _, loc := range locs {
		key := content[loc[2]:loc[3]]
		if _, seen := order[key]; !seen {
			order[key] = len(order)
		}
		matches = append(matches, match{start: loc[0], end: loc[1], key: key})
	}

	var blocks [][]match
	var current []match
	for _, m := range matches {
		if len(current) == 0 || m.start == current[len(current)-1].end {
			current = append(current, m)
		} else {
			blocks = append(blocks, current)
			current = []match{m}
		}
	}
	blocks = append(blocks, current)

	var b strings.Builder
	prevEnd := 0
	for _, block := range blocks {
		keys := make([]string, len(block))
		for i, m := range block {
			keys[i] = m.key
		}
		sort.SliceStable(keys, func(i, j int) bool { return order[keys[i]] < order[keys[j]] })

		b.WriteString(content[prevEnd:block[0].start])
		for _, key := range keys {
			fmt.Fprintf(&b, "#cite(<%s>)", key)
		}
		prevEnd = block[len(block)-1].end
	}
	b.WriteString(content[prevEnd:])
	return b.String()
}

// Prune removes every #cite(...) call unless the character immediately before
// it is keep.
func Prune(content string, keep rune) string {
	var b strings.Builder
	prevEnd := 0
	for _, loc := range citeRe.FindAllStringIndex(content, -1) {
		b.WriteString(content[prevEnd:loc[0]])
		prev, _ := utf8.DecodeLastRuneInString(content[:loc[0]])
		if prev == keep {
			b.WriteString(content[loc[0]:loc[1]])
		}
		prevEnd = loc[1]
	}
	b.WriteString(content[prevEnd:])
	return b.String()
}
