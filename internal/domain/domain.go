package domain

// Document is one piece of study text submitted for processing.
type Document struct {
	Raw     string
	Cleaned string
}

// Sentence is a sentence of a document with its saliency score.
// Index preserves the position in the source text.
type Sentence struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Chunk groups consecutive sentences into a paragraph.
type Chunk struct {
	Index     int
	Sentences []string
	Text      string
}

// Summary is an extractive summary. Sentences are always in source order.
type Summary struct {
	Sentences []Sentence `json:"sentences"`
	Style     Style      `json:"style"`
	Length    Length     `json:"length"`
	Rendered  string     `json:"rendered"`
}

// Keyword is a ranked content word.
type Keyword struct {
	Term      string `json:"term"`
	Frequency int    `json:"frequency"`
}

// Style selects how summary sentences are rendered.
type Style string

const (
	StyleParagraphs Style = "paragraphs"
	StyleBullets    Style = "bullets"
	StyleNumbered   Style = "numbered"
	StyleVeryShort  Style = "very_short"
	StyleDetailed   Style = "detailed"
)

// ParseStyle maps a style name to a Style, defaulting to paragraphs.
func ParseStyle(s string) Style {
	switch st := Style(s); st {
	case StyleParagraphs, StyleBullets, StyleNumbered, StyleVeryShort, StyleDetailed:
		return st
	}
	return StyleParagraphs
}

// Length selects how many sentences a summary keeps.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// ParseLength maps a length name to a Length, defaulting to medium.
func ParseLength(s string) Length {
	switch l := Length(s); l {
	case LengthShort, LengthMedium, LengthLong:
		return l
	}
	return LengthMedium
}

// Sentences returns the sentence budget for the length.
func (l Length) Sentences() int {
	switch l {
	case LengthShort:
		return 3
	case LengthLong:
		return 8
	}
	return 5
}

// Summarizer produces a formatted extractive summary.
type Summarizer interface {
	Summarize(text string, style Style, length Length) string
	Summary(text string, style Style, length Length) Summary
}

// KeywordRanker ranks the content words of a text.
type KeywordRanker interface {
	Rank(text string, k int) []Keyword
}
