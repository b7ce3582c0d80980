package extractor

import (
	"strings"
	"unicode"
)

// NormalizeWhitespace collapses whitespace runs to single spaces while
// keeping paragraph boundaries (runs containing two or more newlines) as a
// single newline. Chunk boundaries downstream depend on this shape.
func NormalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	newlines := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			inRun = true
			if r == '\n' {
				newlines++
			}
			continue
		}
		if inRun && b.Len() > 0 {
			if newlines >= 2 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		inRun = false
		newlines = 0
		b.WriteRune(r)
	}
	return b.String()
}
