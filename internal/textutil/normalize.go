// Package textutil holds the small text helpers shared by the loader and
// the feature extractor.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanText collapses every whitespace run (including NBSP) to one space.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Lower lower-cases s with Unicode rules. A Caser keeps state, so one is
// built per call instead of sharing a package-level value across workers.
func Lower(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}

// ContainsAny reports whether any needle is a substring of haystack.
// Empty needles never match.
func ContainsAny(haystack string, needles []string) bool {
	return CountContained(haystack, needles) > 0
}

// CountContained returns how many needles are substrings of haystack.
func CountContained(haystack string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			n++
		}
	}
	return n
}

// NormalizeTerms trims, lower-cases and dedupes a term list, dropping blanks.
func NormalizeTerms(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = Lower(strings.TrimSpace(x))
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		ys = append(ys, x)
	}
	return ys
}
