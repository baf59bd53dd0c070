package textproc

import (
	"strings"
	"unicode"
)

// Normalize collapses whitespace and drops every character outside
// [A-Za-z0-9.,!? ]. Non-Latin scripts are removed entirely; this is an
// ASCII-only cleaner.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	pendingSpace := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if !allowed(r) {
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == ',', r == '!', r == '?':
		return true
	}
	return false
}
