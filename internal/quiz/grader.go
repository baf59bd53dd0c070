package quiz

import (
	"fmt"
	"strings"
)

// Submission is a user's answer to one item. Text answers mcq, true_false and
// fill_blank items; Matches answers matching items by ListA index.
type Submission struct {
	Text    string
	Matches map[int]string
}

// Answers maps item positions to submissions.
type Answers map[int]Submission

// GradingResult is the outcome of grading a quiz.
type GradingResult struct {
	Score    int `json:"score"`
	MaxScore int `json:"max_score"`
}

// Grade scores every item out of PointsPerItem. Text answers compare
// case-insensitively. Matching slots compare case-sensitively and the item
// earns a proportional, floored share. Missing answers score zero.
func Grade(q Quiz, answers Answers) GradingResult {
	res := GradingResult{MaxScore: PointsPerItem * len(q)}
	for i, it := range q {
		sub, ok := answers[i]
		if !ok {
			continue
		}
		res.Score += gradeItem(it, sub)
	}
	return res
}

func gradeItem(it Item, sub Submission) int {
	switch v := it.(type) {
	case *MultipleChoice:
		return textPoints(sub.Text, v.Answer)
	case *TrueFalse:
		return textPoints(sub.Text, v.AnswerText())
	case *FillBlank:
		return textPoints(sub.Text, v.Answer)
	case *Matching:
		if len(v.ListA) == 0 {
			return 0
		}
		correct := 0
		for idx, want := range v.AnswerKey {
			if got, ok := sub.Matches[idx]; ok && strings.TrimSpace(got) == want {
				correct++
			}
		}
		return PointsPerItem * correct / len(v.ListA)
	default:
		panic(fmt.Sprintf("quiz: unknown item type %T", it))
	}
}

func textPoints(got, want string) int {
	got = strings.TrimSpace(got)
	if got == "" {
		return 0
	}
	if strings.EqualFold(got, want) {
		return PointsPerItem
	}
	return 0
}
