// Package textnorm normalizes document text for comparisons.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Collapse returns s in NFC form with runs of whitespace (tabs included)
// reduced to a single space and the ends trimmed.
func Collapse(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Fold returns the collapsed, case-folded form of s for case-insensitive matching.
func Fold(s string) string {
	return cases.Fold().String(Collapse(s))
}

// EqualFold reports whether a and b match after collapsing and case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether sub occurs in s, ignoring case and whitespace differences.
func ContainsFold(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}
