package textproc

import (
	"strings"
	"unicode"
)

// Splitter breaks text into sentences.
type Splitter interface {
	Split(text string) ([]string, error)
}

// RuleSplitter is a rule-based sentence boundary detector. A run of terminal
// punctuation (.!?) ends a sentence when it is followed by whitespace or the end
// of input, unless the word before a period is a known abbreviation or a single
// letter initial, or the next word starts in lowercase.
type RuleSplitter struct {
	abbreviations map[string]struct{}
}

// NewRuleSplitter creates a splitter with the bundled English abbreviation table.
func NewRuleSplitter() *RuleSplitter {
	return &RuleSplitter{abbreviations: defaultAbbreviations()}
}

// Split returns trimmed sentences in source order. Trailing text without
// terminal punctuation becomes the last sentence.
func (s *RuleSplitter) Split(text string) ([]string, error) {
	runes := []rune(text)
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i
		for end+1 < len(runes) && isTerminal(runes[end+1]) {
			end++
		}
		i = end
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			continue
		}
		if s.suppressed(runes, start, end) {
			continue
		}
		if sent := strings.TrimSpace(string(runes[start : end+1])); sent != "" {
			out = append(out, sent)
		}
		start = end + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out, nil
}

// suppressed reports whether the punctuation run ending at end is not a boundary.
func (s *RuleSplitter) suppressed(runes []rune, start, end int) bool {
	if next := nextWordStart(runes, end+1); next >= 0 && unicode.IsLower(runes[next]) {
		return true
	}
	if runes[end] != '.' {
		return false
	}
	wordStart := end
	for wordStart > start && !unicode.IsSpace(runes[wordStart-1]) {
		wordStart--
	}
	word := strings.ToLower(strings.TrimRight(string(runes[wordStart:end+1]), ".!?"))
	if word == "" {
		return false
	}
	if _, ok := s.abbreviations[word]; ok {
		return true
	}
	w := []rune(word)
	return len(w) == 1 && unicode.IsLetter(w[0])
}

func nextWordStart(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		if unicode.IsLetter(runes[i]) {
			return i
		}
		return -1
	}
	return -1
}

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' }

func defaultAbbreviations() map[string]struct{} {
	words := []string{
		"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "mt", "vs", "etc", "e.g", "i.e", "eg", "ie",
		"fig", "no", "vol", "approx", "dept", "est", "inc", "ltd", "co", "corp", "jan", "feb", "mar",
		"apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec", "u.s", "u.k", "a.m", "p.m",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
