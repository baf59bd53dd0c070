package summarizer

import (
	"fmt"
	"strings"

	"studyquiz/internal/domain"
)

const bulletMarker = "• "

func (s *FrequencySummarizer) render(sentences []domain.Sentence, style domain.Style) string {
	texts := make([]string, len(sentences))
	for i, sent := range sentences {
		texts[i] = strings.TrimSpace(sent.Text)
	}
	switch style {
	case domain.StyleBullets:
		lines := make([]string, len(texts))
		for i, t := range texts {
			lines[i] = bulletMarker + t
		}
		return strings.Join(lines, "\n")
	case domain.StyleNumbered:
		lines := make([]string, len(texts))
		for i, t := range texts {
			lines[i] = fmt.Sprintf("%d. %s", i+1, t)
		}
		return strings.Join(lines, "\n")
	case domain.StyleDetailed:
		chunks := s.chunker.Chunk(texts)
		paragraphs := make([]string, len(chunks))
		for i, c := range chunks {
			paragraphs[i] = c.Text
		}
		return strings.Join(paragraphs, "\n\n")
	default:
		return strings.Join(texts, " ")
	}
}
