package resolver

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// closestMatch returns the candidate most similar to word whose
// Ratcliff/Obershelp ratio is at least cutoff. Equal ratios are broken in favour
// of the lexicographically greater candidate.
func closestMatch(word string, candidates []string, cutoff float64) (string, float64, bool) {
	matcher := difflib.NewMatcher(nil, chars(word))

	var (
		best      string
		bestRatio float64
		found     bool
	)

	for _, candidate := range candidates {
		matcher.SetSeq1(chars(candidate))

		if matcher.RealQuickRatio() < cutoff || matcher.QuickRatio() < cutoff {
			continue
		}

		ratio := matcher.Ratio()
		if ratio < cutoff {
			continue
		}

		if !found || ratio > bestRatio || (ratio == bestRatio && candidate > best) {
			best, bestRatio, found = candidate, ratio, true
		}
	}

	return best, bestRatio, found
}

func chars(s string) []string {
	return strings.Split(s, "")
}
