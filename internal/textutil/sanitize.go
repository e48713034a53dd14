package textutil

import "strings"

// SanitizeFileName makes a string safe to use as a file name. Path
// separators, colons, and asterisks become dashes; quoting and redirection
// characters are dropped; surrounding whitespace is trimmed.
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*':
			return '-'
		case '?', '"', '<', '>', '|':
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(name))
	return strings.TrimSpace(cleaned)
}
