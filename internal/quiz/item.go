// Package quiz builds multi-format quizzes from summary text and grades them.
package quiz

// Kind discriminates quiz item variants.
type Kind string

const (
	KindMultipleChoice Kind = "mcq"
	KindTrueFalse      Kind = "true_false"
	KindFillBlank      Kind = "fill_blank"
	KindMatching       Kind = "matching"
)

// Blank marks the removed word in a prompt.
const Blank = "______"

// PointsPerItem is the score of a fully correct item.
const PointsPerItem = 10

// Item is one quiz question. The set of implementations is closed.
type Item interface {
	Kind() Kind
	Question() string
	isItem()
}

// Quiz is an ordered list of items. Order is fixed at generation time.
type Quiz []Item

// MultipleChoice asks for the blanked word among four options.
type MultipleChoice struct {
	Prompt  string
	Options [4]string
	Answer  string
}

// TrueFalse asks whether a statement is true.
type TrueFalse struct {
	Prompt string
	Answer bool
}

// FillBlank asks for the word removed from the prompt.
type FillBlank struct {
	Prompt string
	Answer string
}

// Matching pairs sentence openings (ListA) with words (ListB).
// AnswerKey maps a ListA index to its ListB word.
type Matching struct {
	Prompt    string
	ListA     []string
	ListB     []string
	AnswerKey map[int]string
}

func (*MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (*TrueFalse) Kind() Kind      { return KindTrueFalse }
func (*FillBlank) Kind() Kind      { return KindFillBlank }
func (*Matching) Kind() Kind       { return KindMatching }

func (m *MultipleChoice) Question() string { return m.Prompt }
func (t *TrueFalse) Question() string      { return t.Prompt }
func (f *FillBlank) Question() string      { return f.Prompt }
func (m *Matching) Question() string       { return m.Prompt }

func (*MultipleChoice) isItem() {}
func (*TrueFalse) isItem()      {}
func (*FillBlank) isItem()      {}
func (*Matching) isItem()       {}

// AnswerText renders the answer key of a boolean item.
func (t *TrueFalse) AnswerText() string {
	if t.Answer {
		return "true"
	}
	return "false"
}
