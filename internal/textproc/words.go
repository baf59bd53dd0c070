package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Words returns lowercase alphanumeric tokens; punctuation never forms a token.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// ContentWords returns Words with stopwords removed.
func ContentWords(text string) []string {
	raw := Words(text)
	out := raw[:0]
	for _, t := range raw {
		if IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TrimPunct strips the punctuation that commonly surrounds a word.
func TrimPunct(word string) string {
	return strings.Trim(word, ".,;:!?\"'()[]{}")
}

// IsAlpha reports whether s is non-empty and made only of letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
