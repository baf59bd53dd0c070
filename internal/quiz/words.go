package quiz

import (
	"strings"

	"studyquiz/internal/textproc"
)

// candidate is an eligible word at a position of strings.Fields(sentence).
type candidate struct {
	pos  int
	word string
}

// candidates returns alphabetic words longer than minLen, stripped of
// surrounding punctuation.
func candidates(words []string, minLen int) []candidate {
	var out []candidate
	for i, w := range words {
		core := textproc.TrimPunct(w)
		if len(core) > minLen && textproc.IsAlpha(core) {
			out = append(out, candidate{pos: i, word: core})
		}
	}
	return out
}

// replaceWord swaps the word at pos for replacement, keeping the punctuation
// that surrounded it.
func replaceWord(words []string, pos int, replacement string) string {
	out := make([]string, len(words))
	copy(out, words)
	w := out[pos]
	core := textproc.TrimPunct(w)
	at := strings.Index(w, core)
	out[pos] = w[:at] + replacement + w[at+len(core):]
	return strings.Join(out, " ")
}

func pick(rnd Rand, pool []string, exclude string) string {
	var allowed []string
	for _, w := range pool {
		if !strings.EqualFold(w, exclude) {
			allowed = append(allowed, w)
		}
	}
	return allowed[rnd.IntN(len(allowed))]
}
