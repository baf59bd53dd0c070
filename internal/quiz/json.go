package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// wireItem is the transport shape of an Item, discriminated by Type.
type wireItem struct {
	Type      Kind            `json:"type"`
	Prompt    string          `json:"prompt"`
	Options   []string        `json:"options,omitempty"`
	ListA     []string        `json:"list_a,omitempty"`
	ListB     []string        `json:"list_b,omitempty"`
	AnswerKey json.RawMessage `json:"answer_key"`
}

// MarshalJSON encodes the quiz as a list of records with a "type" field.
func (q Quiz) MarshalJSON() ([]byte, error) {
	out := make([]wireItem, len(q))
	for i, it := range q {
		w, err := toWire(it)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = w
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes records produced by MarshalJSON.
func (q *Quiz) UnmarshalJSON(data []byte) error {
	var raw []wireItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := make(Quiz, len(raw))
	for i, w := range raw {
		it, err := fromWire(w)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		items[i] = it
	}
	*q = items
	return nil
}

func toWire(it Item) (wireItem, error) {
	w := wireItem{Type: it.Kind(), Prompt: it.Question()}
	var key any
	switch v := it.(type) {
	case *MultipleChoice:
		w.Options = v.Options[:]
		key = v.Answer
	case *TrueFalse:
		key = v.AnswerText()
	case *FillBlank:
		key = v.Answer
	case *Matching:
		w.ListA = v.ListA
		w.ListB = v.ListB
		m := make(map[string]string, len(v.AnswerKey))
		for k, val := range v.AnswerKey {
			m[strconv.Itoa(k)] = val
		}
		key = m
	default:
		return wireItem{}, fmt.Errorf("unknown item type %T", it)
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return wireItem{}, err
	}
	w.AnswerKey = raw
	return w, nil
}

func fromWire(w wireItem) (Item, error) {
	switch w.Type {
	case KindMultipleChoice:
		if len(w.Options) != 4 {
			return nil, fmt.Errorf("mcq needs 4 options, got %d", len(w.Options))
		}
		it := &MultipleChoice{Prompt: w.Prompt}
		copy(it.Options[:], w.Options)
		if err := json.Unmarshal(w.AnswerKey, &it.Answer); err != nil {
			return nil, fmt.Errorf("mcq answer_key: %w", err)
		}
		return it, nil
	case KindTrueFalse:
		var key string
		if err := json.Unmarshal(w.AnswerKey, &key); err != nil {
			return nil, fmt.Errorf("true_false answer_key: %w", err)
		}
		if key != "true" && key != "false" {
			return nil, fmt.Errorf("true_false answer_key must be true or false, got %q", key)
		}
		return &TrueFalse{Prompt: w.Prompt, Answer: key == "true"}, nil
	case KindFillBlank:
		it := &FillBlank{Prompt: w.Prompt}
		if err := json.Unmarshal(w.AnswerKey, &it.Answer); err != nil {
			return nil, fmt.Errorf("fill_blank answer_key: %w", err)
		}
		return it, nil
	case KindMatching:
		var m map[string]string
		if err := json.Unmarshal(w.AnswerKey, &m); err != nil {
			return nil, fmt.Errorf("matching answer_key: %w", err)
		}
		key := make(map[int]string, len(m))
		for k, v := range m {
			idx, err := strconv.Atoi(k)
			if err != nil || idx < 0 || idx >= len(w.ListA) {
				return nil, fmt.Errorf("matching answer_key index %q out of range", k)
			}
			key[idx] = v
		}
		return &Matching{Prompt: w.Prompt, ListA: w.ListA, ListB: w.ListB, AnswerKey: key}, nil
	}
	return nil, fmt.Errorf("unknown item type %q", w.Type)
}
