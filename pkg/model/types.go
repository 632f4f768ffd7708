package model

import "strings"

// QuestionType discriminates how a question is presented.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeOpen           QuestionType = "open"
)

var questionTypeAliases = map[string]QuestionType{
	"multiple_choice": QuestionTypeMultipleChoice,
	"multiple-choice": QuestionTypeMultipleChoice,
	"multiplechoice":  QuestionTypeMultipleChoice,
	"mc":              QuestionTypeMultipleChoice,
	"choice":          QuestionTypeMultipleChoice,
	"open":            QuestionTypeOpen,
	"open_ended":      QuestionTypeOpen,
	"open-ended":      QuestionTypeOpen,
	"essay":           QuestionTypeOpen,
}

// ParseQuestionType resolves a bank "type" value, accepting the documented
// aliases case-insensitively.
func ParseQuestionType(raw string) (QuestionType, bool) {
	t, ok := questionTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

// Choice is one answer option of a multiple-choice question.
type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

// Question is a normalized question record.
type Question struct {
	ID     int          `json:"id"`
	Type   QuestionType `json:"type"`
	Prompt string       `json:"prompt"`
	// Choices is non-empty for multiple-choice questions, with exactly one
	// entry flagged Correct.
	Choices []Choice `json:"answer_choices,omitempty"`
	// Correct indexes the correct entry in Choices; -1 for open questions.
	Correct int `json:"correct_index"`
	// Answer is the expected answer of an open question, if provided.
	Answer      string `json:"correct_answer,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// IsMultipleChoice reports whether the question carries answer choices.
func (q Question) IsMultipleChoice() bool {
	return q.Type == QuestionTypeMultipleChoice
}

// CorrectChoice returns the choice referenced by Correct.
func (q Question) CorrectChoice() (Choice, bool) {
	if q.Correct < 0 || q.Correct >= len(q.Choices) {
		return Choice{}, false
	}
	return q.Choices[q.Correct], true
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	if q.Choices != nil {
		out.Choices = append([]Choice(nil), q.Choices...)
	}
	return out
}

// QuestionSet is the ordered sequence of questions of one pipeline run.
type QuestionSet []Question

// Clone returns a deep copy of the set.
func (s QuestionSet) Clone() QuestionSet {
	if s == nil {
		return nil
	}
	out := make(QuestionSet, len(s))
	for i, q := range s {
		out[i] = q.Clone()
	}
	return out
}
