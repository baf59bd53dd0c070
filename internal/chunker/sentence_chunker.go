package chunker

import (
	"strings"

	"studyquiz/internal/domain"
)

// SentenceChunker groups sentences into paragraph chunks with optional overlap.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 3
	}
	if overlapSentences < 0 || overlapSentences >= sentencesPerChunk {
		overlapSentences = 0
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
	}
}

// Chunk groups sentences in order. Empty sentences are skipped.
func (c *SentenceChunker) Chunk(sentences []string) []domain.Chunk {
	var clean []string
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	var chunks []domain.Chunk
	i := 0
	idx := 0
	for i < len(clean) {
		end := i + c.sentencesPerChunk
		if end > len(clean) {
			end = len(clean)
		}
		group := clean[i:end]
		chunks = append(chunks, domain.Chunk{
			Index:     idx,
			Sentences: group,
			Text:      strings.Join(group, " "),
		})
		if end == len(clean) {
			break
		}
		i = end - c.overlapSentences
		idx++
	}
	return chunks
}
