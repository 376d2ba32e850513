package types

import (
	"encoding/json"
	"errors"
)

var ErrAnswerShape = errors.New("answer must be a string or a list of strings")

// AnswerValue is the payload of one answer. On the wire and in the database it
// is either a JSON string (TEXT_INPUT, TEXT_FIELD, MULTIPLE_CHOICE) or a JSON
// list of strings (MULTIPLE_SELECT); the question being answered dictates
// which shape is legal. Shape is tracked explicitly instead of sniffing an
// untyped value so mismatches fail before anything is written.
type AnswerValue struct {
	Text    string
	Options []string
	List    bool
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Text: s}
}

func ListAnswer(options []string) AnswerValue {
	return AnswerValue{Options: options, List: true}
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AnswerValue{Text: s}
		return nil
	}

	var options []string
	if err := json.Unmarshal(data, &options); err == nil {
		*a = AnswerValue{Options: options, List: true}
		return nil
	}

	return ErrAnswerShape
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.List {
		// keep [] over null for empty selections
		if a.Options == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.Options)
	}

	return json.Marshal(a.Text)
}

// MatchesType reports whether the payload shape agrees with the question type.
func (a AnswerValue) MatchesType(t QuestionType) bool {
	return a.List == t.ListAnswered()
}

// Empty reports whether the answer counts as unanswered: the empty string, or
// an empty selection for list-shaped answers.
func (a AnswerValue) Empty() bool {
	if a.List {
		return len(a.Options) == 0
	}

	return a.Text == ""
}
