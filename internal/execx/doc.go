// Package execx runs external tools and abstracts execution behind an
// interface so service clients can be tested without the real binaries.
package execx
