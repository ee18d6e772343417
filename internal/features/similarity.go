package features

import "github.com/pmezard/go-difflib/difflib"

// Similarity is the sequence-matching ratio 2*M/T between a and b, where M
// is the total size of the matching blocks found by the Ratcliff/Obershelp
// algorithm over runes and T is the combined rune length.
//
// Two empty strings are identical (1.0); exactly one empty string scores 0.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
