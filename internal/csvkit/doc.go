// Package csvkit holds the small CSV helpers shared by the tools that read
// tabular input: header-addressed tables, clock-style duration parsing, and
// second-valued interval matching.
package csvkit
