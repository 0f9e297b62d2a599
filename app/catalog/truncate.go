package catalog

import (
	"strings"
)

// wordBoundaryRatio is how far into the budget the last space must fall for
// word-boundary backoff to apply; an earlier space keeps the hard cutoff.
const wordBoundaryRatio = 0.6

// Truncate cuts text to at most maxChars Unicode code points, never
// splitting a multi-byte character. With preserveWordBoundary the cut backs
// off to the preceding space when that space is late enough in the budget.
// The second return value reports whether anything was cut.
func Truncate(text string, maxChars int, preserveWordBoundary bool) (string, bool) {
	if maxChars <= 0 {
		return "", text != ""
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}

	cut := string(runes[:maxChars])

	if preserveWordBoundary {
		if idx := strings.LastIndex(cut, " "); idx >= 0 {
			if float64(len([]rune(cut[:idx]))) >= wordBoundaryRatio*float64(maxChars) {
				cut = cut[:idx]
			}
		}
	}

	return strings.TrimRight(cut, " "), true
}
