package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/markup"
	"github.com/goliatone/go-json2beamer/pkg/model"
)

// QuestionValidator turns merged records into a normalized question set.
type QuestionValidator interface {
	Validate(records []bank.Record) (model.QuestionSet, error)
}

// Option customises the validator.
type Option func(*Validator)

// WithHTMLMarkup treats question text as HTML: emphasis tags become rich-text
// markers and every other tag is stripped before validation.
func WithHTMLMarkup(enabled bool) Option {
	return func(v *Validator) {
		v.htmlMarkup = enabled
	}
}

// Validator is the default QuestionValidator. It holds no mutable state and is
// safe for concurrent use.
type Validator struct {
	htmlMarkup bool
}

var _ QuestionValidator = (*Validator)(nil)

// New constructs a Validator applying any provided options.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate checks every record in order and stops at the first violation.
// Records are not modified.
func (v *Validator) Validate(records []bank.Record) (model.QuestionSet, error) {
	set := make(model.QuestionSet, 0, len(records))
	for i, record := range records {
		question, err := v.ValidateRecord(record)
		if err != nil {
			return nil, withPosition(err, i)
		}
		set = append(set, question)
	}
	return set, nil
}

// ValidateRecord checks and normalizes a single record.
func (v *Validator) ValidateRecord(record bank.Record) (model.Question, error) {
	id, ok := record.ID()
	if !ok {
		return model.Question{}, &bank.SchemaError{Field: fieldID, Message: "must be an integer"}
	}
	if err := checkShape(id, record); err != nil {
		return model.Question{}, err
	}

	question := model.Question{ID: id, Correct: -1}

	prompt, err := v.text(id, fieldPrompt, record[fieldPrompt])
	if err != nil {
		return model.Question{}, err
	}
	if prompt == "" {
		return model.Question{}, missing(id, fieldPrompt)
	}
	question.Prompt = prompt

	rawType, _ := record[fieldType].(string)
	if strings.TrimSpace(rawType) == "" {
		return model.Question{}, missing(id, fieldType)
	}
	qType, ok := model.ParseQuestionType(rawType)
	if !ok {
		return model.Question{}, invalid(id, fieldType, fmt.Sprintf("unknown question type %q", rawType))
	}
	question.Type = qType

	explanation, err := v.text(id, fieldExplanation, record[fieldExplanation])
	if err != nil {
		return model.Question{}, err
	}
	question.Explanation = explanation

	rawChoices, _ := record[fieldChoices].([]any)
	correctRaw, hasCorrect := record[fieldCorrectAnswer]
	if correctRaw == nil {
		hasCorrect = false
	}

	switch question.Type {
	case model.QuestionTypeMultipleChoice:
		if len(rawChoices) == 0 {
			return model.Question{}, invalid(id, fieldChoices, "must include at least one choice for a multiple-choice question")
		}
		choices, correct, err := v.resolveChoices(id, rawChoices, correctRaw, hasCorrect)
		if err != nil {
			return model.Question{}, err
		}
		question.Choices = choices
		question.Correct = correct
	case model.QuestionTypeOpen:
		if len(rawChoices) > 0 {
			return model.Question{}, invalid(id, fieldChoices, "is not allowed for an open question")
		}
		if hasCorrect {
			answer, err := v.text(id, fieldCorrectAnswer, fmt.Sprint(correctRaw))
			if err != nil {
				return model.Question{}, err
			}
			question.Answer = answer
		}
	}

	return question, nil
}

// text normalizes a free-text field: optional HTML conversion, trimming and
// marker/character checks. Markers are left in place for the renderer.
func (v *Validator) text(id int, field string, raw any) (string, error) {
	if raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", invalid(id, field, "must be a string")
	}
	if v.htmlMarkup {
		value = htmlToMarkers(value)
	}
	value = lineEndings.Replace(value)
	value = strings.TrimSpace(value)
	if err := markup.Validate(value); err != nil {
		return "", &bank.SchemaError{QuestionID: id, Field: field, Message: err.Error(), Err: err}
	}
	return value, nil
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func missing(id int, field string) error {
	return &bank.SchemaError{QuestionID: id, Field: field, Message: "is required"}
}

func invalid(id int, field, message string) error {
	return &bank.SchemaError{QuestionID: id, Field: field, Message: message}
}

// withPosition records the index of the failing record when the id is not
// usable to locate it.
func withPosition(err error, index int) error {
	schemaErr, ok := err.(*bank.SchemaError)
	if !ok || schemaErr.QuestionID != 0 {
		return err
	}
	clone := *schemaErr
	clone.Field = fmt.Sprintf("[%d].%s", index, strings.TrimPrefix(schemaErr.Field, "."))
	return &clone
}
