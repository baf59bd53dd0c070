package quiz

import (
	"regexp"
	"strings"
)

// DefaultQuestionCount is used when a non-positive count is requested.
const DefaultQuestionCount = 10

// minSentenceWords is the word count a sentence must exceed to be quizzed.
const minSentenceWords = 5

var rotation = [...]Kind{
	KindMultipleChoice, KindTrueFalse, KindFillBlank, KindMatching, KindMultipleChoice,
	KindTrueFalse, KindFillBlank, KindMultipleChoice, KindMatching, KindTrueFalse,
}

// KindAt returns the item type assigned to a sample position.
func KindAt(position int) Kind { return rotation[position%len(rotation)] }

var (
	sentenceBreak = regexp.MustCompile(`[.!?]+`)
	listMarker    = regexp.MustCompile(`^[•*\-]\s*`)
)

// Generator synthesizes quizzes from summary text.
type Generator struct {
	rnd Rand
}

// NewGenerator creates a generator. A nil source uses a time-seeded one.
func NewGenerator(rnd Rand) *Generator {
	if rnd == nil {
		rnd = NewRand()
	}
	return &Generator{rnd: rnd}
}

// Generate builds up to count items from the summary. The result may be shorter
// than count, or empty, when too few sentences qualify or items cannot be built.
func (g *Generator) Generate(summary string, count int) Quiz {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	sentences := QuizSentences(summary)
	if len(sentences) < count {
		count = len(sentences)
	}
	if count == 0 {
		return Quiz{}
	}
	perm := g.rnd.Perm(len(sentences))[:count]
	sample := make([]string, count)
	for i, idx := range perm {
		sample[i] = sentences[idx]
	}

	quiz := make(Quiz, 0, count)
	for i, sentence := range sample {
		it := g.build(KindAt(i), sample, i)
		if it == nil {
			if fb := g.fillBlank(sentence); fb != nil {
				it = fb
			}
		}
		if it != nil {
			quiz = append(quiz, it)
		}
	}
	return quiz
}

// build returns nil when the sentence cannot produce an item of kind.
func (g *Generator) build(kind Kind, sample []string, i int) Item {
	switch kind {
	case KindMultipleChoice:
		if it := g.multipleChoice(sample[i]); it != nil {
			return it
		}
	case KindTrueFalse:
		return g.trueFalse(sample[i])
	case KindMatching:
		if it := g.matching(matchingWindow(sample, i)); it != nil {
			return it
		}
	case KindFillBlank:
		if it := g.fillBlank(sample[i]); it != nil {
			return it
		}
	}
	return nil
}

// QuizSentences returns the sentences of text long enough to be quizzed.
func QuizSentences(text string) []string {
	var out []string
	for _, s := range sentenceBreak.Split(text, -1) {
		s = strings.TrimSpace(listMarker.ReplaceAllString(strings.TrimSpace(s), ""))
		if len(strings.Fields(s)) > minSentenceWords {
			out = append(out, s)
		}
	}
	return out
}

// matchingWindow returns up to four sampled sentences starting at i, or the
// last four when that would run past the end.
func matchingWindow(sample []string, i int) []string {
	if i+4 <= len(sample) {
		return sample[i : i+4]
	}
	if len(sample) <= 4 {
		return sample
	}
	return sample[len(sample)-4:]
}
