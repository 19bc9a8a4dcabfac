// Package textx holds the pure text derivations: word counts, reading-time
// labels, and URL slugs.
package textx

import (
	"fmt"
	"strings"
	"unicode"
)

// CountWords counts whitespace-separated tokens. Empty or blank text is 0.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime renders the " • N min read" suffix at 200 words per minute.
// Zero words yields an empty string, so the label disappears entirely.
func ReadingTime(wordCount int) string {
	if wordCount == 0 {
		return ""
	}
	minutes := (wordCount + 199) / 200
	if minutes == 1 {
		return " • 1 min read"
	}
	return fmt.Sprintf(" • %d min read", minutes)
}

// Slugify derives a URL-safe identifier from a display name: lower-case,
// strip everything outside [a-z0-9 -], turn whitespace runs into single
// hyphens, collapse repeated hyphens, trim hyphens at the ends. The result
// is stable under re-application to its own output.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	s := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
