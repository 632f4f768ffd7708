// Package jsonkey renders an arranged question set as an indented JSON answer
// key: every choice with its final label and the label of the correct one.
package jsonkey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/render"
)

// Name is the registry name of the answer key renderer.
const Name = "json"

type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

type answerKey struct {
	Title     string        `json:"title"`
	Seed      *int64        `json:"shuffle_seed,omitempty"`
	Questions []questionKey `json:"questions"`
}

type questionKey struct {
	ID           int         `json:"id"`
	Type         string      `json:"type"`
	Prompt       string      `json:"prompt"`
	Choices      []choiceKey `json:"answer_choices,omitempty"`
	CorrectLabel string      `json:"correct_label,omitempty"`
	Answer       string      `json:"correct_answer,omitempty"`
	Explanation  string      `json:"explanation,omitempty"`
}

type choiceKey struct {
	Label   string `json:"label"`
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

func (r *Renderer) Render(_ context.Context, set model.QuestionSet, options render.RenderOptions) ([]byte, error) {
	gen := options.Generation.WithDefaults()
	key := answerKey{
		Title:     gen.Title,
		Seed:      gen.ShuffleSeed,
		Questions: make([]questionKey, 0, len(set)),
	}

	for _, q := range set {
		entry := questionKey{
			ID:          q.ID,
			Type:        string(q.Type),
			Prompt:      q.Prompt,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		}
		for i, choice := range q.Choices {
			label := model.ChoiceLabel(i)
			entry.Choices = append(entry.Choices, choiceKey{Label: label, Text: choice.Text, Correct: i == q.Correct})
			if i == q.Correct {
				entry.CorrectLabel = label
			}
		}
		if q.IsMultipleChoice() && entry.CorrectLabel == "" {
			return nil, &render.RenderError{QuestionID: q.ID, Field: "correct_answer", Message: "no correct choice"}
		}
		key.Questions = append(key.Questions, entry)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(key); err != nil {
		return nil, fmt.Errorf("json renderer: encode answer key: %w", err)
	}
	return buf.Bytes(), nil
}
