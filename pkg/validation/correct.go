package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/model"
)

// resolveChoices normalizes the answer choices and determines the single
// correct one from is_correct flags and/or correct_answer.
func (v *Validator) resolveChoices(id int, raw []any, correctRaw any, hasCorrect bool) ([]model.Choice, int, error) {
	choices := make([]model.Choice, 0, len(raw))
	var flagged []int

	for i, item := range raw {
		field := fmt.Sprintf("%s[%d]", fieldChoices, i)
		var (
			textRaw any
			correct bool
		)
		switch value := item.(type) {
		case string:
			textRaw = value
		case map[string]any:
			textRaw = value[fieldChoiceText]
			field += "." + fieldChoiceText
			correct, _ = value[fieldChoiceCorrect].(bool)
		default:
			return nil, -1, invalid(id, field, "must be a string or an object with text")
		}

		text, err := v.text(id, field, textRaw)
		if err != nil {
			return nil, -1, err
		}
		if text == "" {
			return nil, -1, missing(id, field)
		}
		if correct {
			flagged = append(flagged, i)
		}
		choices = append(choices, model.Choice{Text: text})
	}

	index := -1
	if hasCorrect {
		resolved, err := v.resolveCorrectAnswer(id, choices, correctRaw)
		if err != nil {
			return nil, -1, err
		}
		if len(flagged) > 0 && (len(flagged) != 1 || flagged[0] != resolved) {
			return nil, -1, invalid(id, fieldCorrectAnswer, "disagrees with the choices marked is_correct")
		}
		index = resolved
	} else {
		switch len(flagged) {
		case 0:
			return nil, -1, invalid(id, fieldCorrectAnswer, "is required: set correct_answer or mark one choice is_correct")
		case 1:
			index = flagged[0]
		default:
			return nil, -1, invalid(id, fieldChoices, fmt.Sprintf("exactly one choice must be marked correct, found %d", len(flagged)))
		}
	}

	choices[index].Correct = true
	return choices, index, nil
}

// resolveCorrectAnswer maps correct_answer to a choice index. Strings match a
// choice text first, then a single letter label; numbers are 0-based indexes.
func (v *Validator) resolveCorrectAnswer(id int, choices []model.Choice, raw any) (int, error) {
	switch value := raw.(type) {
	case float64:
		if math.Trunc(value) != value || value < 0 || int(value) >= len(choices) {
			return -1, invalid(id, fieldCorrectAnswer, fmt.Sprintf("index %v is out of range for %d choices", value, len(choices)))
		}
		return int(value), nil
	case string:
		answer, err := v.text(id, fieldCorrectAnswer, value)
		if err != nil {
			return -1, err
		}
		if answer == "" {
			return -1, missing(id, fieldCorrectAnswer)
		}

		match := -1
		for i, choice := range choices {
			if choice.Text != answer {
				continue
			}
			if match >= 0 {
				return -1, invalid(id, fieldCorrectAnswer, fmt.Sprintf("%q matches more than one choice", answer))
			}
			match = i
		}
		if match >= 0 {
			return match, nil
		}

		if idx := model.LabelIndex(strings.TrimSuffix(answer, ")")); idx >= 0 && idx < len(choices) {
			return idx, nil
		}
		return -1, invalid(id, fieldCorrectAnswer, fmt.Sprintf("%q does not match any choice", answer))
	default:
		return -1, invalid(id, fieldCorrectAnswer, "must be a choice text, a letter or an index")
	}
}
