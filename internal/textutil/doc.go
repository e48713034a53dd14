// Package textutil provides text helpers shared across commands: filename
// sanitization, edit-distance similarity, and natural sort ordering.
package textutil
