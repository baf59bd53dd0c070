package quiz

import (
	"fmt"
	"sort"
	"strings"
)

// Flashcard shows a quiz item's question on the front and its answer on the back.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Flashcards turns every item of q into a card, in quiz order.
func Flashcards(q Quiz) []Flashcard {
	cards := make([]Flashcard, len(q))
	for i, it := range q {
		cards[i] = Flashcard{Front: it.Question(), Back: answerText(it)}
	}
	return cards
}

func answerText(it Item) string {
	switch v := it.(type) {
	case *MultipleChoice:
		return v.Answer
	case *TrueFalse:
		return v.AnswerText()
	case *FillBlank:
		return v.Answer
	case *Matching:
		idx := make([]int, 0, len(v.AnswerKey))
		for i := range v.AnswerKey {
			idx = append(idx, i)
		}
		sort.Ints(idx)
		pairs := make([]string, len(idx))
		for n, i := range idx {
			label := ""
			if i < len(v.ListA) {
				label = v.ListA[i]
			}
			pairs[n] = fmt.Sprintf("%s -> %s", label, v.AnswerKey[i])
		}
		return strings.Join(pairs, "\n")
	default:
		panic(fmt.Sprintf("quiz: unknown item type %T", it))
	}
}

// ScoreFlashcards awards PointsPerItem per card the player marked as known.
// known is clamped to [0, total].
func ScoreFlashcards(known, total int) GradingResult {
	if known < 0 {
		known = 0
	}
	if known > total {
		known = total
	}
	return GradingResult{Score: PointsPerItem * known, MaxScore: PointsPerItem * total}
}
