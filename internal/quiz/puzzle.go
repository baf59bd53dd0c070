package quiz

import "strings"

// Puzzle is the summary with its words scrambled; the player rebuilds it.
type Puzzle struct {
	Original  string   `json:"-"`
	Scrambled []string `json:"scrambled"`
}

// NewPuzzle shuffles the words of summary.
func NewPuzzle(summary string, rnd Rand) Puzzle {
	words := strings.Fields(summary)
	scrambled := make([]string, len(words))
	copy(scrambled, words)
	rnd.Shuffle(len(scrambled), func(i, j int) { scrambled[i], scrambled[j] = scrambled[j], scrambled[i] })
	return Puzzle{Original: summary, Scrambled: scrambled}
}

// ScorePuzzle returns a 0-100 score: the share of original words covered by
// submitted words that appear anywhere in the original, case-insensitively.
func ScorePuzzle(original, answer string) int {
	want := strings.Fields(strings.ToLower(original))
	if len(want) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(want))
	for _, w := range want {
		present[w] = struct{}{}
	}
	matched := 0
	for _, w := range strings.Fields(strings.ToLower(answer)) {
		if _, ok := present[w]; ok {
			matched++
		}
	}
	if matched > len(want) {
		matched = len(want)
	}
	return 100 * matched / len(want)
}
