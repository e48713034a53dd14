package textutil

import "unicode/utf8"

// Similarity returns a normalized similarity in [0, 1] between two strings
// based on the Damerau-Levenshtein edit distance. Identical strings score 1,
// fully dissimilar strings score 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	distance := damerauLevenshtein([]rune(a), []rune(b))
	return 1 - float64(distance)/float64(longest)
}

// damerauLevenshtein computes the optimal string alignment distance, which
// counts insertions, deletions, substitutions, and adjacent transpositions.
func damerauLevenshtein(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if swap := prev2[j-2] + 1; swap < curr[j] {
					curr[j] = swap
				}
			}
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
