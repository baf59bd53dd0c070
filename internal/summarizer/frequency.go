package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"studyquiz/internal/chunker"
	"studyquiz/internal/domain"
	"studyquiz/internal/textproc"
)

// FrequencySummarizer ranks sentences by the corpus-wide frequency of their
// content words (stopwords filtered) and renders the top ones in source order.
type FrequencySummarizer struct {
	splitter textproc.Splitter
	chunker  *chunker.SentenceChunker
	onError  func(err error)
}

// Option customizes a FrequencySummarizer.
type Option func(*FrequencySummarizer)

// WithSplitter replaces the rule-based sentence splitter.
func WithSplitter(s textproc.Splitter) Option {
	return func(f *FrequencySummarizer) { f.splitter = s }
}

// WithErrorHandler registers a callback invoked when the summarizer falls back
// to naive splitting.
func WithErrorHandler(fn func(err error)) Option {
	return func(f *FrequencySummarizer) { f.onError = fn }
}

// WithChunker replaces the paragraph grouping used by the detailed style.
func WithChunker(c *chunker.SentenceChunker) Option {
	return func(f *FrequencySummarizer) { f.chunker = c }
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer(opts ...Option) *FrequencySummarizer {
	s := &FrequencySummarizer{
		splitter: textproc.NewRuleSplitter(),
		chunker:  chunker.NewSentenceChunker(3, 0),
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreSentences splits text and scores each sentence by the summed global
// frequency of its content words.
func (s *FrequencySummarizer) ScoreSentences(text string) (scored []domain.Sentence, err error) {
	defer func() {
		if r := recover(); r != nil {
			scored, err = nil, fmt.Errorf("sentence splitter panicked: %v", r)
		}
	}()
	sentences, err := s.splitter.Split(text)
	if err != nil {
		return nil, fmt.Errorf("split sentences: %w", err)
	}
	freq := map[string]int{}
	tokens := make([][]string, len(sentences))
	for i, sent := range sentences {
		tokens[i] = textproc.ContentWords(sent)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}
	scored = make([]domain.Sentence, len(sentences))
	for i, sent := range sentences {
		score := 0
		for _, tok := range tokens[i] {
			score += freq[tok]
		}
		scored[i] = domain.Sentence{Index: i, Text: sent, Score: float64(score)}
	}
	return scored, nil
}

// Summarize returns the rendered summary. It never fails: splitter failures
// degrade to naive period splitting.
func (s *FrequencySummarizer) Summarize(text string, style domain.Style, length domain.Length) string {
	return s.Summary(text, style, length).Rendered
}

// Summary normalizes text, selects the top sentences for length and renders
// them in source order.
func (s *FrequencySummarizer) Summary(text string, style domain.Style, length domain.Length) domain.Summary {
	style = domain.ParseStyle(string(style))
	length = domain.ParseLength(string(length))
	cleaned := textproc.Normalize(text)

	scored, err := s.ScoreSentences(cleaned)
	var selected []domain.Sentence
	if err != nil {
		s.onError(err)
		selected = fallbackSentences(cleaned, length.Sentences())
	} else {
		selected = topSentences(scored, length.Sentences())
	}
	if style == domain.StyleVeryShort {
		selected = topSentences(selected, 2)
	}
	return domain.Summary{
		Sentences: selected,
		Style:     style,
		Length:    length,
		Rendered:  s.render(selected, style),
	}
}

// topSentences keeps the n best-scored sentences (ties by lower index) and
// returns them re-sorted by source index.
func topSentences(sentences []domain.Sentence, n int) []domain.Sentence {
	ranked := make([]domain.Sentence, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	selected := ranked[:n]
	sort.Slice(selected, func(i, j int) bool { return selected[i].Index < selected[j].Index })
	return selected
}

// fallbackSentences splits on periods, keeps pieces with more than five words
// and takes the first n.
func fallbackSentences(text string, n int) []domain.Sentence {
	var out []domain.Sentence
	for _, piece := range strings.Split(text, ".") {
		piece = strings.TrimSpace(piece)
		if len(strings.Fields(piece)) <= 5 {
			continue
		}
		out = append(out, domain.Sentence{Index: len(out), Text: piece + "."})
		if len(out) == n {
			break
		}
	}
	return out
}
