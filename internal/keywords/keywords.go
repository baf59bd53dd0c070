// Package keywords ranks the content words of a text by frequency.
package keywords

import (
	"sort"
	"strings"

	"studyquiz/internal/domain"
	"studyquiz/internal/textproc"
)

// DefaultCount is the number of keywords returned when k is not positive.
const DefaultCount = 10

var fallbackTerms = []string{"learning", "knowledge", "education"}

// Extractor implements domain.KeywordRanker.
type Extractor struct{}

// NewExtractor returns a frequency keyword extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Rank implements domain.KeywordRanker.
func (Extractor) Rank(text string, k int) []domain.Keyword { return Rank(text, k) }

// Extract returns up to k keyword terms. When nothing survives filtering it
// returns the fixed default terms.
func Extract(text string, k int) []string {
	ranked := Rank(text, k)
	terms := make([]string, len(ranked))
	for i, kw := range ranked {
		terms[i] = kw.Term
	}
	return terms
}

// Rank returns up to k keywords with their frequencies, most frequent first and
// ties in order of first appearance. Fallback terms carry a zero frequency.
func Rank(text string, k int) []domain.Keyword {
	if k <= 0 {
		k = DefaultCount
	}
	counts := map[string]int{}
	var order []string
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		w := textproc.TrimPunct(raw)
		if len(w) <= 3 || !textproc.IsAlpha(w) || textproc.IsStopword(w) {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}
	if len(order) == 0 {
		return fallback(k)
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if k > len(order) {
		k = len(order)
	}
	out := make([]domain.Keyword, k)
	for i, term := range order[:k] {
		out[i] = domain.Keyword{Term: term, Frequency: counts[term]}
	}
	return out
}

func fallback(k int) []domain.Keyword {
	n := len(fallbackTerms)
	if k < n {
		n = k
	}
	out := make([]domain.Keyword, n)
	for i := 0; i < n; i++ {
		out[i] = domain.Keyword{Term: fallbackTerms[i]}
	}
	return out
}
