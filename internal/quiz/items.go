package quiz

import (
	"fmt"
	"strings"
)

var (
	thematicPool = []string{
		"learning", "studying", "knowledge", "education", "information",
		"science", "technology", "research", "analysis", "development",
	}
	genericPool   = []string{"process", "system", "method", "theory", "concept", "practice"}
	adverbPool    = []string{"never", "always", "sometimes", "rarely", "often"}
	matchingTitle = "Match items from List A with List B:"
)

// multipleChoice blanks a random word longer than three letters and offers it
// with three distractors.
func (g *Generator) multipleChoice(sentence string) *MultipleChoice {
	words := strings.Fields(sentence)
	cands := candidates(words, 3)
	if len(cands) == 0 {
		return nil
	}
	correct := cands[g.rnd.IntN(len(cands))].word
	pos := 0
	for _, c := range cands {
		if c.word == correct {
			pos = c.pos
			break
		}
	}
	options := []string{
		correct,
		pick(g.rnd, thematicPool, correct),
		variant(correct),
		pick(g.rnd, genericPool, correct),
	}
	g.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	it := &MultipleChoice{Prompt: replaceWord(words, pos, Blank), Answer: correct}
	copy(it.Options[:], options)
	return it
}

// variant derives a morphological look-alike of word. It never returns word
// itself: a word already shaped like its stem plus "ing" becomes stem plus "ed".
func variant(word string) string {
	if len(word) > 5 {
		if v := word[:4] + "ing"; !strings.EqualFold(v, word) {
			return v
		}
		return word[:len(word)-3] + "ed"
	}
	return word + "ed"
}

// trueFalse presents the sentence as-is, or with one word swapped for a
// frequency adverb. When no word can be swapped the item stays true.
func (g *Generator) trueFalse(sentence string) *TrueFalse {
	if g.rnd.IntN(2) == 0 {
		return &TrueFalse{Prompt: sentence, Answer: true}
	}
	words := strings.Fields(sentence)
	if len(words) > minSentenceWords {
		if cands := candidates(words, 4); len(cands) > 0 {
			c := cands[g.rnd.IntN(len(cands))]
			adverb := adverbPool[g.rnd.IntN(len(adverbPool))]
			return &TrueFalse{Prompt: replaceWord(words, c.pos, adverb), Answer: false}
		}
	}
	return &TrueFalse{Prompt: sentence, Answer: true}
}

// fillBlank removes a random word longer than four letters.
func (g *Generator) fillBlank(sentence string) *FillBlank {
	words := strings.Fields(sentence)
	cands := candidates(words, 4)
	if len(cands) == 0 {
		return nil
	}
	c := cands[g.rnd.IntN(len(cands))]
	return &FillBlank{Prompt: replaceWord(words, c.pos, Blank), Answer: c.word}
}

// matching pairs the opening words of each sentence with one of its words.
func (g *Generator) matching(sentences []string) *Matching {
	if len(sentences) < 2 {
		return nil
	}
	if len(sentences) > 4 {
		sentences = sentences[:4]
	}
	var listA, listB []string
	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		cands := candidates(words, 4)
		if len(cands) == 0 {
			continue
		}
		head := words
		if len(head) > 5 {
			head = head[:5]
		}
		listA = append(listA, fmt.Sprintf("%d. %s...", len(listA)+1, strings.Join(head, " ")))
		listB = append(listB, cands[g.rnd.IntN(len(cands))].word)
	}
	if len(listA) < 2 {
		return nil
	}
	key := make(map[int]string, len(listB))
	for i, w := range listB {
		key[i] = w
	}
	g.rnd.Shuffle(len(listB), func(i, j int) { listB[i], listB[j] = listB[j], listB[i] })
	return &Matching{Prompt: matchingTitle, ListA: listA, ListB: listB, AnswerKey: key}
}
